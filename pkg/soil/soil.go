// Package soil пересчитывает сырые отсчёты ёмкостного датчика влажности
// (TOMST TMS-4) в объёмную влажность почвы (VWC, доля 0–1) по
// квадратичным калибровкам TMS для разных типов почв.
package soil

import (
	"fmt"
	"strings"
)

// Type — закрытое перечисление калибровочных классов почвы.
type Type int

const (
	Sand Type = iota
	LoamySandA
	LoamySandB
	SandyLoamA
	SandyLoamB
	Loam
	SiltLoam
	Peat
	Water
	Universal
	SandTMS1
	LoamySandTMS1
	SiltLoamTMS1
)

// All перечисляет все типы почв в порядке объявления.
var All = [...]Type{
	Sand, LoamySandA, LoamySandB, SandyLoamA, SandyLoamB,
	Loam, SiltLoam, Peat, Water, Universal,
	SandTMS1, LoamySandTMS1, SiltLoamTMS1,
}

// Coefficients — коэффициенты квадратичной калибровки VWC = a·x² + b·x + c.
type Coefficients struct {
	A, B, C float64
}

// Калибровочная таблица TMS: по одному набору (a,b,c) на каждый тип почвы.
// Значения фиксированы на этапе сборки и не меняются во время работы.
var coefTable = [...]Coefficients{
	Sand:          {-3.00e-9, 1.61920e-4, -1.09960e-1},
	LoamySandA:    {-1.90e-8, 2.66280e-4, -1.54089e-1},
	LoamySandB:    {-2.30e-8, 2.82473e-4, -1.67211e-1},
	SandyLoamA:    {-3.80e-8, 3.39449e-4, -2.14921e-1},
	SandyLoamB:    {-9.00e-10, 2.61847e-4, -1.58618e-1},
	Loam:          {-5.10e-8, 3.97984e-4, -2.91046e-1},
	SiltLoam:      {1.70e-8, 1.18119e-4, -1.01168e-1},
	Peat:          {1.23e-7, -1.44644e-4, 2.02927e-1},
	Water:         {0.0, 2.79250e-4, -1.56400e-1},
	Universal:     {-1.34e-8, 2.50623e-4, -1.58888e-1},
	SandTMS1:      {-3.00e-9, 2.61630e-4, -1.58430e-1},
	LoamySandTMS1: {0.0, 2.46640e-4, -1.53890e-1},
	SiltLoamTMS1:  {0.0, 2.29210e-4, -1.66270e-1},
}

var names = [...]string{
	Sand:          "sand",
	LoamySandA:    "loamy_sand_A",
	LoamySandB:    "loamy_sand_B",
	SandyLoamA:    "sandy_loam_A",
	SandyLoamB:    "sandy_loam_B",
	Loam:          "loam",
	SiltLoam:      "silt_loam",
	Peat:          "peat",
	Water:         "water",
	Universal:     "universal",
	SandTMS1:      "sand_TMS1",
	LoamySandTMS1: "loamy_sand_TMS1",
	SiltLoamTMS1:  "silt_loam_TMS1",
}

// Coefficients возвращает калибровочную тройку для типа почвы.
// Паникует на значении вне перечисления.
func (t Type) Coefficients() Coefficients {
	if t < 0 || int(t) >= len(coefTable) {
		panic(fmt.Sprintf("soil: invalid soil type %d", int(t)))
	}
	return coefTable[t]
}

// String возвращает машинное имя типа почвы.
func (t Type) String() string {
	if t < 0 || int(t) >= len(names) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return names[t]
}

// canonical приводит имя к виду для сравнения: нижний регистр,
// без пробелов, дефисов и подчёркиваний.
func canonical(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

var byCanonical = func() map[string]Type {
	m := make(map[string]Type, len(names))
	for _, t := range All {
		m[canonical(names[int(t)])] = t
	}
	return m
}()

// Parse разбирает имя типа почвы без учёта регистра и разделителей:
// "Silt Loam", "silt_loam" и "SILTLOAM" дают один и тот же тип.
// Для неизвестного имени возвращает ошибку с исходной строкой.
func Parse(name string) (Type, error) {
	if t, ok := byCanonical[canonical(name)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("soil: unknown soil type %q", name)
}
