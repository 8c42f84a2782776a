// Package seriesio читает и пишет файлы с данными датчиков: экспорт
// TMS-4 (CSV с разделителем «;») и замеры камеры (CSV/JSON).
// Числовая часть обработки в пакет не входит — он только превращает
// строки файлов в массивы чисел и обратно.
package seriesio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// TMSRecord — одна строка экспорта датчика влажности.
type TMSRecord struct {
	Time  time.Time
	Raw   float64 // сырой отсчёт ёмкостного датчика
	TempC float64 // температура почвы T1 [°C]; NaN, если показания нет
}

// VWCRecord — строка результата: исходные поля плюс вычисленная влажность.
type VWCRecord struct {
	TMSRecord
	VWC float64
}

// Форматы времени, встречающиеся в экспортах TMS и Lolly.
var tmsTimeLayouts = []string{
	"2006.01.02 15:04",
	"2006.01.02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTMSTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var err error
	for _, layout := range tmsTimeLayouts {
		var parsed time.Time
		parsed, err = time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("seriesio: unknown timestamp format %q: %v", raw, err)
}

// parseTMSValue разбирает числовое поле экспорта. Экспорты TMS из
// Lolly используют десятичную запятую; пустое поле или NaN означает
// отсутствие показания.
func parseTMSValue(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" || strings.EqualFold(field, "nan") {
		return math.NaN(), nil
	}
	field = strings.ReplaceAll(field, ",", ".")
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("seriesio: invalid number %q: %w", field, err)
	}
	return v, nil
}

// ReadTMSFile читает экспорт TMS-4.
//
// Поддерживаются два формата строк (разделитель «;»):
//   - полный экспорт: index;datetime;tz;T1;T2;T3;raw;shake;errflag
//   - компактный: datetime;raw;temp
//
// Строка заголовка (первое поле «datetime» или «index») пропускается.
func ReadTMSFile(path string) ([]TMSRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seriesio: %w", err)
	}
	defer f.Close()
	return ReadTMS(f)
}

// ReadTMS — как ReadTMSFile, но из произвольного reader.
func ReadTMS(r io.Reader) ([]TMSRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var records []TMSRecord
	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seriesio: read TMS row: %w", err)
		}
		line++
		if line == 1 && isTMSHeader(fields) {
			continue
		}
		rec, err := parseTMSRow(fields)
		if err != nil {
			return nil, fmt.Errorf("%w (line %d)", err, line)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seriesio: no TMS records found")
	}
	return records, nil
}

func isTMSHeader(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(fields[0]))
	return first == "datetime" || first == "index" || first == "date"
}

func parseTMSRow(fields []string) (TMSRecord, error) {
	var tsField, tempField, rawField string
	switch {
	case len(fields) >= 7:
		// полный экспорт TOMST: datetime во втором поле, T1 в четвёртом,
		// отсчёт влажности в седьмом
		tsField, tempField, rawField = fields[1], fields[3], fields[6]
	case len(fields) == 3:
		tsField, rawField, tempField = fields[0], fields[1], fields[2]
	default:
		return TMSRecord{}, fmt.Errorf("seriesio: unexpected field count %d", len(fields))
	}

	ts, err := parseTMSTime(tsField)
	if err != nil {
		return TMSRecord{}, err
	}
	raw, err := parseTMSValue(rawField)
	if err != nil {
		return TMSRecord{}, err
	}
	if math.IsNaN(raw) {
		return TMSRecord{}, fmt.Errorf("seriesio: moisture count is missing")
	}
	temp, err := parseTMSValue(tempField)
	if err != nil {
		return TMSRecord{}, err
	}
	return TMSRecord{Time: ts, Raw: raw, TempC: temp}, nil
}
