package gasflux

import (
	"math"
	"testing"

	"github.com/GaryBoone/GoStats/stats"
)

func TestRegressPerfectLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9} // y = 2x + 1
	slope, r2 := Regress(x, y)
	if math.Abs(slope-2.0) > 1e-10 {
		t.Fatalf("slope should be 2.0, got %v", slope)
	}
	if math.Abs(r2-1.0) > 1e-10 {
		t.Fatalf("r2 should be 1.0, got %v", r2)
	}
}

func TestRegressZeroTimeVariance(t *testing.T) {
	x := []float64{5, 5, 5, 5}
	y := []float64{1, 2, 3, 4}
	slope, r2 := Regress(x, y)
	if slope != 0 {
		t.Fatalf("constant x must give slope 0, got %v", slope)
	}
	if r2 != 0 {
		t.Fatalf("constant x must give r2 0, got %v", r2)
	}
}

func TestRegressConstantY(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{7, 7, 7, 7}
	slope, r2 := Regress(x, y)
	if slope != 0 {
		t.Fatalf("constant y must give slope 0, got %v", slope)
	}
	if r2 != 0 {
		t.Fatalf("constant y must give r2 0, got %v", r2)
	}
}

func TestRegressSinglePoint(t *testing.T) {
	slope, r2 := Regress([]float64{1}, []float64{2})
	if slope != 0 || r2 != 0 {
		t.Fatalf("single point must be degenerate, got slope=%v r2=%v", slope, r2)
	}
}

func TestRegressFiniteOutput(t *testing.T) {
	x := []float64{0, 1e-9, 2e-9}
	y := []float64{1, 1, 1 + 1e-12}
	slope, r2 := Regress(x, y)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		t.Fatalf("slope is not finite: %v", slope)
	}
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		t.Fatalf("r2 is not finite: %v", r2)
	}
}

// Сверяем с независимой реализацией МНК на зашумлённых данных.
func TestRegressMatchesGoStats(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := []float64{1.0, 2.5, 5.5, 6.5, 9.0, 10.6, 13.1, 14.8, 17.2, 18.9}

	slope, r2 := Regress(x, y)
	refSlope, _, refR2, _, _, _ := stats.LinearRegression(x, y)

	if math.Abs(slope-refSlope) > 1e-9 {
		t.Fatalf("slope mismatch: got %v, reference %v", slope, refSlope)
	}
	if math.Abs(r2-refR2) > 1e-9 {
		t.Fatalf("r2 mismatch: got %v, reference %v", r2, refR2)
	}
}

func TestRegressPanicsOnBadInput(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}
	assertPanics("empty", func() { Regress(nil, nil) })
	assertPanics("mismatch", func() { Regress([]float64{1, 2}, []float64{1}) })
}
