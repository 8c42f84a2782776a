package seriesio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pv/soil-sensor-go/pkg/gasflux"
)

// ChamberMeasurement — один замер камеры вместе с метаданными точки.
type ChamberMeasurement struct {
	Collar    string
	Replicate string
	Geometry  gasflux.Geometry
	Series    gasflux.Series
}

type chamberJSON struct {
	Collar        string  `json:"collar"`
	Replicate     string  `json:"replicate"`
	TotalVolumeML float64 `json:"total_volume_ml"`
	AreaCM2       float64 `json:"area_cm2"`
	Data          struct {
		Timestamp []float64 `json:"timestamp"`
		CO2       []float64 `json:"co2"`
		CH4       []float64 `json:"ch4"`
		H2O       []float64 `json:"h2o"`
		ChamberT  []float64 `json:"chamber_t"`
		ChamberP  []float64 `json:"chamber_p"`
	} `json:"data"`
}

// ReadChamberJSON читает замер в JSON-формате полевого архива:
// collar/replicate, объём в мл, площадь в см² и шесть параллельных
// массивов отсчётов.
func ReadChamberJSON(path string) (ChamberMeasurement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ChamberMeasurement{}, fmt.Errorf("seriesio: %w", err)
	}
	var raw chamberJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return ChamberMeasurement{}, fmt.Errorf("seriesio: failed to decode chamber JSON: %w", err)
	}
	return ChamberMeasurement{
		Collar:    raw.Collar,
		Replicate: raw.Replicate,
		Geometry: gasflux.Geometry{
			VolumeM3: raw.TotalVolumeML * 1e-6,
			AreaM2:   raw.AreaCM2 * 1e-4,
		},
		Series: gasflux.Series{
			TimeS:        raw.Data.Timestamp,
			CO2ppm:       raw.Data.CO2,
			CH4ppb:       raw.Data.CH4,
			H2OmmolMol:   raw.Data.H2O,
			ChamberTempC: raw.Data.ChamberT,
			ChamberPkPa:  raw.Data.ChamberP,
		},
	}, nil
}

// ReadChamberCSV читает замер из CSV с шестью колонками:
// time_s,co2_ppm,ch4_ppb,h2o_mmol_mol,chamber_t_c,chamber_p_kpa.
// Первая строка — заголовок. Геометрию камеры CSV не содержит,
// её задаёт вызывающий код.
func ReadChamberCSV(path string) (gasflux.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gasflux.Series{}, fmt.Errorf("seriesio: %w", err)
	}

	var s gasflux.Series
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if i == 0 {
			// заголовок
			continue
		}
		fields := strings.Split(ln, ",")
		if len(fields) != 6 {
			return gasflux.Series{}, fmt.Errorf("seriesio: chamber CSV line %d: expected 6 columns, got %d", i+1, len(fields))
		}
		vals := make([]float64, 6)
		for j, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return gasflux.Series{}, fmt.Errorf("seriesio: chamber CSV line %d: %w", i+1, err)
			}
			vals[j] = v
		}
		s.TimeS = append(s.TimeS, vals[0])
		s.CO2ppm = append(s.CO2ppm, vals[1])
		s.CH4ppb = append(s.CH4ppb, vals[2])
		s.H2OmmolMol = append(s.H2OmmolMol, vals[3])
		s.ChamberTempC = append(s.ChamberTempC, vals[4])
		s.ChamberPkPa = append(s.ChamberPkPa, vals[5])
	}
	if len(s.TimeS) == 0 {
		return gasflux.Series{}, fmt.Errorf("seriesio: chamber CSV is empty")
	}
	return s, nil
}
