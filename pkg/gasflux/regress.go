package gasflux

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// Regress выполняет линейную регрессию МНК по парам (x, y) и возвращает
// наклон и коэффициент детерминации R².
//
// Алгоритм двухпроходный: сначала средние, затем суммы отклонений
//
//	slope = Σ((x-x̄)(y-ȳ)) / Σ((x-x̄)²)
//	r     = Σ((x-x̄)(y-ȳ)) / sqrt(Σ((x-x̄)²)·Σ((y-ȳ)²))
//	r²    = r·r
//
// Вырожденные случаи не считаются ошибкой: при нулевой дисперсии x
// наклон равен 0, при нулевой дисперсии x или y R² равен 0. Результат
// всегда конечен для конечных входов.
//
// Паникует при пустых или разной длины срезах — это ошибка вызывающего
// кода, а не восстановимый сбой.
func Regress(x, y []float64) (slope, r2 float64) {
	if len(x) == 0 {
		panic("gasflux: regress on empty input")
	}
	if len(x) != len(y) {
		panic(fmt.Sprintf("gasflux: regress length mismatch: %d vs %d", len(x), len(y)))
	}

	n := float64(len(x))
	xMean := floats.Sum(x) / n
	yMean := floats.Sum(y) / n

	var ssXY, ssXX, ssYY float64
	for i := range x {
		dx := x[i] - xMean
		dy := y[i] - yMean
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	const eps = 0x1p-52 // машинный эпсилон для float64

	if math.Abs(ssXX) >= eps {
		slope = ssXY / ssXX
	}
	if math.Abs(ssXX) >= eps && math.Abs(ssYY) >= eps {
		r := ssXY / math.Sqrt(ssXX*ssYY)
		r2 = r * r
	}
	return slope, r2
}
