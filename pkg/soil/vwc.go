package soil

import "math"

// Эмпирические константы температурной коррекции сырого отсчёта
// (алгоритм myClim для датчиков TMS).
const (
	refTempC = 24.0     // опорная температура калибровки [°C]
	acorT    = 1.911327 // коррекция на градус в сухой среде
	wcorT    = 0.64108  // коррекция на градус в воде
)

// Calibration — резерв под индивидуальную калибровку датчика.
// Применяется к скорректированному по температуре отсчёту:
// x' = x + Offset + Slope·x. Нулевые значения ничего не меняют;
// ненулевые эталонной моделью пока не используются.
type Calibration struct {
	Slope  float64
	Offset float64
}

// VWC пересчитывает один сырой отсчёт в объёмную влажность [0,1].
//
// Коррекция двухпроходная, без итераций до сходимости: сначала
// неисправленная оценка vwc0 по квадратике, затем поправка сырого
// отсчёта на отклонение температуры от 24 °C с весом между сухой и
// водной коррекцией по vwc0, и повторный расчёт квадратики.
// NaN вместо температуры означает «датчик температуры не дал
// показания» — коррекция пропускается.
func VWC(raw, tempC float64, t Type) float64 {
	return VWCCalibrated(raw, tempC, t, Calibration{})
}

// VWCCalibrated — то же, что VWC, с учётом калибровки датчика.
func VWCCalibrated(raw, tempC float64, t Type, cal Calibration) float64 {
	coef := t.Coefficients()

	vwc0 := coef.A*raw*raw + coef.B*raw + coef.C

	corrected := raw
	if !math.IsNaN(tempC) {
		corrected = raw + (refTempC-tempC)*(acorT+(wcorT-acorT)*vwc0)
	}
	corrected += cal.Offset + cal.Slope*corrected

	vwc := coef.A*corrected*corrected + coef.B*corrected + coef.C
	return clamp01(vwc)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
