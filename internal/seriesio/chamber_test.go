package seriesio

import (
	"math"
	"testing"

	"github.com/pv/soil-sensor-go/pkg/gasflux"
)

// Эталонные потоки для тестового замера col_1/REP_1, посчитанные
// независимой реализацией той же модели.
var fixtureExpected = gasflux.Result{
	FluxCO2: 1.660577395,
	FluxCH4: 4.304413150,
	FluxH2O: 60.568281212,
	R2CO2:   0.999410946,
	R2CH4:   0.996235122,
	R2H2O:   0.997178456,
}

func TestReadChamberJSON(t *testing.T) {
	m, err := ReadChamberJSON("testdata/col_1_rep_1.json")
	if err != nil {
		t.Fatalf("ReadChamberJSON: %v", err)
	}
	if m.Collar != "col_1" || m.Replicate != "REP_1" {
		t.Fatalf("metadata: %+v", m)
	}
	if math.Abs(m.Geometry.VolumeM3-16852.1e-6) > 1e-12 {
		t.Fatalf("volume: got %v", m.Geometry.VolumeM3)
	}
	if math.Abs(m.Geometry.AreaM2-318e-4) > 1e-12 {
		t.Fatalf("area: got %v", m.Geometry.AreaM2)
	}
	if len(m.Series.TimeS) != 300 {
		t.Fatalf("expected 300 samples, got %d", len(m.Series.TimeS))
	}
}

func TestReadChamberCSV(t *testing.T) {
	s, err := ReadChamberCSV("testdata/chamber_fixture.csv")
	if err != nil {
		t.Fatalf("ReadChamberCSV: %v", err)
	}
	if len(s.TimeS) != 300 {
		t.Fatalf("expected 300 samples, got %d", len(s.TimeS))
	}
	if s.TimeS[0] != 1.0 {
		t.Fatalf("first timestamp: got %v", s.TimeS[0])
	}
	if math.Abs(s.CO2ppm[0]-400.134385) > 1e-9 {
		t.Fatalf("first co2: got %v", s.CO2ppm[0])
	}
	if math.Abs(s.ChamberPkPa[1]-91.1992) > 1e-9 {
		t.Fatalf("second pressure: got %v", s.ChamberPkPa[1])
	}
}

func TestChamberCSVErrors(t *testing.T) {
	if _, err := ReadChamberCSV("testdata/no_such_file.csv"); err == nil {
		t.Fatal("missing file must be an error")
	}
}

func TestFluxPipelineJSON(t *testing.T) {
	m, err := ReadChamberJSON("testdata/col_1_rep_1.json")
	if err != nil {
		t.Fatalf("ReadChamberJSON: %v", err)
	}
	result, err := gasflux.Compute(m.Series, m.Geometry)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	assertFluxMatch(t, result, fixtureExpected)
}

func TestFluxPipelineCSV(t *testing.T) {
	s, err := ReadChamberCSV("testdata/chamber_fixture.csv")
	if err != nil {
		t.Fatalf("ReadChamberCSV: %v", err)
	}
	result, err := gasflux.Compute(s, gasflux.Geometry{VolumeM3: 16852.1e-6, AreaM2: 318e-4})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	assertFluxMatch(t, result, fixtureExpected)
}

func assertFluxMatch(t *testing.T, got, want gasflux.Result) {
	t.Helper()
	check := func(name string, g, w float64) {
		if math.Abs(g-w) > 1e-6 {
			t.Fatalf("%s: got %.9f, want %.9f", name, g, w)
		}
	}
	check("FluxCO2", got.FluxCO2, want.FluxCO2)
	check("FluxCH4", got.FluxCH4, want.FluxCH4)
	check("FluxH2O", got.FluxH2O, want.FluxH2O)
	check("R2CO2", got.R2CO2, want.R2CO2)
	check("R2CH4", got.R2CH4, want.R2CH4)
	check("R2H2O", got.R2H2O, want.R2H2O)
}
