package seriesio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Формат времени выходного файла совпадает с экспортом Lolly.
const outTimeLayout = "2006.01.02 15:04"

// WriteVWCFile пишет результат пересчёта в CSV с разделителем «;»:
// datetime;raw;temp;VWC_moisture. Влажность печатается с шестью
// знаками после запятой.
func WriteVWCFile(path string, records []VWCRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("seriesio: %w", err)
	}
	if err := WriteVWC(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("seriesio: close %s: %w", path, err)
	}
	return nil
}

// WriteVWC — как WriteVWCFile, но в произвольный writer.
func WriteVWC(w io.Writer, records []VWCRecord) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write([]string{"datetime", "raw", "temp", "VWC_moisture"}); err != nil {
		return fmt.Errorf("seriesio: write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Time.Format(outTimeLayout),
			strconv.FormatFloat(rec.Raw, 'g', -1, 64),
			strconv.FormatFloat(rec.TempC, 'g', -1, 64),
			strconv.FormatFloat(rec.VWC, 'f', 6, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("seriesio: write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("seriesio: flush: %w", err)
	}
	return nil
}
