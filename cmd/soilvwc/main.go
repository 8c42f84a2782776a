// soilvwc пересчитывает экспорт датчика влажности TMS-4 в объёмную
// влажность почвы (VWC) для выбранного типа почвы и пишет результат
// в CSV. Опционально сохраняет прогон в архив (--archive).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pv/soil-sensor-go/internal/archive"
	chArchive "github.com/pv/soil-sensor-go/internal/archive/clickhouse"
	influxArchive "github.com/pv/soil-sensor-go/internal/archive/influxdb"
	pgArchive "github.com/pv/soil-sensor-go/internal/archive/postgres"
	sqliteArchive "github.com/pv/soil-sensor-go/internal/archive/sqlite"
	"github.com/pv/soil-sensor-go/internal/seriesio"
	"github.com/pv/soil-sensor-go/pkg/soil"
)

type options struct {
	input      string
	soilType   string
	output     string
	archiveDSN string
	logFile    string
}

func main() {
	opts := parseFlags()

	if err := configureLogging(opts.logFile); err != nil {
		log.Fatalf("log file: %v", err)
	}

	if opts.input == "" {
		flag.Usage()
		os.Exit(1)
	}

	soilType, err := soil.Parse(opts.soilType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	records, err := seriesio.ReadTMSFile(opts.input)
	if err != nil {
		log.Fatalf("read %s: %v", opts.input, err)
	}

	results := make([]seriesio.VWCRecord, 0, len(records))
	for _, rec := range records {
		results = append(results, seriesio.VWCRecord{
			TMSRecord: rec,
			VWC:       soil.VWC(rec.Raw, rec.TempC, soilType),
		})
	}

	if err := seriesio.WriteVWCFile(opts.output, results); err != nil {
		log.Fatalf("write %s: %v", opts.output, err)
	}
	fmt.Printf("wrote %s (%d records, soil=%s)\n", opts.output, len(results), soilType)

	if opts.archiveDSN != "" {
		ctx := context.Background()
		store, err := openArchive(ctx, opts.archiveDSN)
		if err != nil {
			log.Fatalf("archive: %v", err)
		}
		defer store.Close()
		run := archive.VWCRun{
			RunID:    archive.NewRunID(),
			Source:   opts.input,
			SoilType: soilType.String(),
			SavedAt:  time.Now(),
			Records:  results,
		}
		if err := store.SaveVWCRun(ctx, run); err != nil {
			log.Fatalf("archive: %v", err)
		}
		fmt.Printf("archived run %s to %s\n", run.RunID, opts.archiveDSN)
	}
}

func parseFlags() options {
	var opt options

	flag.StringVar(&opt.input, "input", "", "path to TMS-4 export CSV (semicolon-delimited)")
	flag.StringVar(&opt.soilType, "soil", "universal", "soil type for the VWC calibration")
	flag.StringVar(&opt.output, "output", "output.csv", "path to resulting CSV")
	flag.StringVar(&opt.archiveDSN, "archive", "", "optional archive DSN (sqlite path, postgres://, clickhouse://, http:// InfluxDB)")
	flag.StringVar(&opt.logFile, "log-file", "", "write logs to file instead of stderr")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input data.csv --soil <type> [options]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Converts TMS-4 moisture counts to volumetric water content.")
		fmt.Fprintln(flag.CommandLine.Output(), "\nAvailable soil types:")
		for _, st := range soil.All {
			fmt.Fprintf(flag.CommandLine.Output(), "  %s\n", st)
		}
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptions:")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opt
}

func openArchive(ctx context.Context, dsn string) (archive.Archive, error) {
	switch {
	case archive.IsPostgresDSN(dsn):
		return pgArchive.New(ctx, pgArchive.Config{ConnString: dsn})
	case archive.IsClickHouseDSN(dsn):
		return chArchive.New(ctx, chArchive.Config{DSN: dsn})
	case archive.IsInfluxDSN(dsn):
		return influxArchive.New(ctx, influxArchive.Config{DSN: dsn})
	case archive.IsSQLiteDSN(dsn):
		return sqliteArchive.New(ctx, sqliteArchive.Config{Source: sqliteArchive.NormalizeSource(dsn)})
	default:
		return nil, fmt.Errorf("unsupported --archive value: %s", dsn)
	}
}

func configureLogging(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}
