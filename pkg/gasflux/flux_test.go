package gasflux

import (
	"math"
	"testing"
)

func constSeries(n int) Series {
	s := Series{
		TimeS:        make([]float64, n),
		CO2ppm:       make([]float64, n),
		CH4ppb:       make([]float64, n),
		H2OmmolMol:   make([]float64, n),
		ChamberTempC: make([]float64, n),
		ChamberPkPa:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.TimeS[i] = float64(i + 1)
		s.CO2ppm[i] = 400.0
		s.CH4ppb[i] = 2000.0
		s.H2OmmolMol[i] = 16.0
		s.ChamberTempC[i] = 25.0
		s.ChamberPkPa[i] = 91.0
	}
	return s
}

var testGeometry = Geometry{VolumeM3: 16852.1e-6, AreaM2: 318e-4}

func TestComputeConstantConcentrations(t *testing.T) {
	result, err := Compute(constSeries(100), testGeometry)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if math.Abs(result.FluxCO2) > 1e-10 {
		t.Fatalf("constant CO2 -> zero flux, got %v", result.FluxCO2)
	}
	if math.Abs(result.FluxCH4) > 1e-10 {
		t.Fatalf("constant CH4 -> zero flux, got %v", result.FluxCH4)
	}
	if math.Abs(result.FluxH2O) > 1e-10 {
		t.Fatalf("constant H2O -> zero flux, got %v", result.FluxH2O)
	}
}

func TestComputeLinearCO2Increase(t *testing.T) {
	// CO2 растёт линейно на 0.1 ppm/s при T=25°C, P=91 кПа
	s := constSeries(300)
	for i, ts := range s.TimeS {
		s.CO2ppm[i] = 400.0 + 0.1*ts
	}

	result, err := Compute(s, testGeometry)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	slopeMol := 0.1e-6 // 0.1 ppm/s в моль/моль/с
	expected := slopeMol * (91000.0 / (RGas * 298.15)) * (testGeometry.VolumeM3 / testGeometry.AreaM2) * 1e6

	if math.Abs(result.FluxCO2-expected) > 0.01 {
		t.Fatalf("CO2 flux: expected %.4f, got %.4f", expected, result.FluxCO2)
	}
	if result.R2CO2 <= 0.999 {
		t.Fatalf("R2 should be ~1.0 for perfect line, got %v", result.R2CO2)
	}
	if math.Abs(result.FluxCH4) > 1e-6 {
		t.Fatalf("CH4 should be ~0, got %v", result.FluxCH4)
	}
}

func TestComputeChannelsAreIndependent(t *testing.T) {
	s := constSeries(50)
	for i, ts := range s.TimeS {
		s.CO2ppm[i] = 400.0 + 0.2*ts
		// CH4 с изломом: R² заметно ниже единицы
		if i < 25 {
			s.CH4ppb[i] = 2000.0 + 0.5*ts
		} else {
			s.CH4ppb[i] = 2012.5 - 0.5*(ts-25)
		}
	}
	result, err := Compute(s, testGeometry)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if result.R2CO2 < 0.999 {
		t.Fatalf("CO2 fit should be near-perfect, got R2=%v", result.R2CO2)
	}
	if result.R2CH4 > 0.9 {
		t.Fatalf("broken CH4 ramp should fit poorly, got R2=%v", result.R2CH4)
	}
}

func TestComputeRejectsBadShape(t *testing.T) {
	if _, err := Compute(Series{}, testGeometry); err == nil {
		t.Fatal("empty series must be rejected")
	}

	s := constSeries(10)
	s.CH4ppb = s.CH4ppb[:9]
	if _, err := Compute(s, testGeometry); err == nil {
		t.Fatal("mismatched columns must be rejected")
	}
}
