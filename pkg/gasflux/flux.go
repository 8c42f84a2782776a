// Package gasflux вычисляет потоки газов (CO₂, CH₄, H₂O) по временным
// рядам концентраций из закрытой камеры (анализатор LI-7810).
//
// Модель: линейная регрессия концентрации по времени, пересчёт наклона
// в моль-поток через уравнение идеального газа и геометрию камеры.
package gasflux

import (
	"fmt"

	"github.com/gonum/floats"
)

// RGas — универсальная газовая постоянная [Дж/(моль·К)].
const RGas = 8.314

// Series — параллельные временные ряды одного замера камеры.
// Все срезы должны быть одинаковой непустой длины.
type Series struct {
	TimeS        []float64 // секунды от начала замера
	CO2ppm       []float64 // ppm
	CH4ppb       []float64 // ppb
	H2OmmolMol   []float64 // ммоль/моль
	ChamberTempC []float64 // °C
	ChamberPkPa  []float64 // кПа
}

// Geometry — геометрия измерительной камеры.
type Geometry struct {
	VolumeM3 float64 // полный объём системы [м³]
	AreaM2   float64 // площадь основания камеры [м²]
}

// Result — потоки трёх газов и качество линейной аппроксимации.
type Result struct {
	FluxCO2 float64 // мкмоль м⁻² с⁻¹
	FluxCH4 float64 // нмоль м⁻² с⁻¹
	FluxH2O float64 // мкмоль м⁻² с⁻¹
	R2CO2   float64
	R2CH4   float64
	R2H2O   float64
}

func (s Series) validate() error {
	n := len(s.TimeS)
	if n == 0 {
		return fmt.Errorf("gasflux: series is empty")
	}
	for name, col := range map[string][]float64{
		"co2": s.CO2ppm, "ch4": s.CH4ppb, "h2o": s.H2OmmolMol,
		"chamber_t": s.ChamberTempC, "chamber_p": s.ChamberPkPa,
	} {
		if len(col) != n {
			return fmt.Errorf("gasflux: column %s has %d samples, time has %d", name, len(col), n)
		}
	}
	return nil
}

// Compute считает потоки по одному замеру камеры.
//
// Порядок пересчёта единиц фиксирован и не упрощается алгебраически,
// чтобы совпадать с эталонной реализацией по округлению:
//
//   - CO₂: ppm → моль/моль (×1e-6) до регрессии, поток = slope·K·1e6
//   - CH₄: регрессия по сырым ppb, поток = slope·1e-9·K·1e9
//   - H₂O: регрессия по сырым ммоль/моль, поток = slope·1e-3·K·1e6
//
// где K = (P/(R·T))·(V/A), T и P — средние по ряду в К и Па.
func Compute(s Series, g Geometry) (Result, error) {
	if err := s.validate(); err != nil {
		return Result{}, err
	}

	tK := floats.Sum(s.ChamberTempC)/float64(len(s.ChamberTempC)) + 273.15
	pPa := floats.Sum(s.ChamberPkPa) / float64(len(s.ChamberPkPa)) * 1000.0
	k := (pPa / (RGas * tK)) * (g.VolumeM3 / g.AreaM2)

	co2Mol := make([]float64, len(s.CO2ppm))
	for i, v := range s.CO2ppm {
		co2Mol[i] = v * 1e-6
	}
	slopeCO2, r2CO2 := Regress(s.TimeS, co2Mol)
	slopeCH4, r2CH4 := Regress(s.TimeS, s.CH4ppb)
	slopeH2O, r2H2O := Regress(s.TimeS, s.H2OmmolMol)

	return Result{
		FluxCO2: slopeCO2 * k * 1e6,
		FluxCH4: slopeCH4 * 1e-9 * k * 1e9,
		FluxH2O: slopeH2O * 1e-3 * k * 1e6,
		R2CO2:   r2CO2,
		R2CH4:   r2CH4,
		R2H2O:   r2H2O,
	}, nil
}
