package soil

import (
	"math"
	"testing"
)

func TestVWCKnownValues(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		raw, tempC float64
		soil       Type
		want       float64
	}{
		{1500, 10, Universal, 0.191820385261},
		{2000, 24, Universal, 0.288758000000},
		{2500, 30, Sand, 0.274714015246},
		{1800, 5.5, Peat, 0.349332584628},
		{3000, 15, Loam, 0.445013999736},
		{1234, nan, SiltLoam, 0.070477698000},
		{2200, 18, Water, 0.460177773931},
		{1700, 2, SandTMS1, 0.286288896095},
		{3400, 20, LoamySandA, 0.532300277980},
		{3400, 20, SandyLoamB, 0.722275734112},
		{100, 24, Universal, 0.0},
		{4000, 0, Water, 0.965231938059},
	}
	for _, c := range cases {
		got := VWC(c.raw, c.tempC, c.soil)
		if math.Abs(got-c.want) > 1e-8 {
			t.Fatalf("VWC(%v, %v, %v) = %.12f, want %.12f", c.raw, c.tempC, c.soil, got, c.want)
		}
	}
}

func TestVWCAlwaysClamped(t *testing.T) {
	temps := []float64{-10, 0, 12, 24, 35, math.NaN()}
	for raw := 0.0; raw <= 5000; raw += 250 {
		for _, tc := range temps {
			for _, st := range All {
				got := VWC(raw, tc, st)
				if got < 0 || got > 1 || math.IsNaN(got) {
					t.Fatalf("VWC(%v, %v, %v) = %v out of [0,1]", raw, tc, st, got)
				}
			}
		}
	}
}

func TestVWCNaNTempSkipsCorrection(t *testing.T) {
	// без температуры поправка не применяется: результат совпадает
	// с квадратичной формулой по сырому отсчёту
	for _, st := range All {
		raw := 2100.0
		c := st.Coefficients()
		want := clamp01(c.A*raw*raw + c.B*raw + c.C)
		got := VWC(raw, math.NaN(), st)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("%v: got %v, want %v", st, got, want)
		}
	}
}

func TestVWCAtReferenceTempMatchesUncorrected(t *testing.T) {
	// при T = 24°C температурная поправка нулевая
	for _, st := range All {
		raw := 1900.0
		withT := VWC(raw, 24.0, st)
		noT := VWC(raw, math.NaN(), st)
		if math.Abs(withT-noT) > 1e-12 {
			t.Fatalf("%v: 24°C should equal uncorrected, got %v vs %v", st, withT, noT)
		}
	}
}

func TestVWCCalibratedZeroIsIdentity(t *testing.T) {
	var cal Calibration
	for _, st := range All {
		plain := VWC(2300, 17, st)
		withCal := VWCCalibrated(2300, 17, st, cal)
		if plain != withCal {
			t.Fatalf("%v: zero calibration must be a no-op: %v vs %v", st, plain, withCal)
		}
	}
}

func TestVWCCalibratedOffset(t *testing.T) {
	// сдвиг действует в пространстве сырых отсчётов, до квадратики
	cal := Calibration{Offset: 40}
	c := Universal.Coefficients()
	x := 2000.0 + 40
	want := clamp01(c.A*x*x + c.B*x + c.C)
	got := VWCCalibrated(2000, 24, Universal, cal)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("offset calibration: got %v, want %v", got, want)
	}
}
