// gasflux считает потоки CO₂, CH₄ и H₂O по одному замеру закрытой
// камеры (LI-7810). Вход — JSON полевого архива или шестиколоночный
// CSV; геометрию камеры задают флаги либо YAML-реестр камер.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pv/soil-sensor-go/internal/archive"
	chArchive "github.com/pv/soil-sensor-go/internal/archive/clickhouse"
	influxArchive "github.com/pv/soil-sensor-go/internal/archive/influxdb"
	pgArchive "github.com/pv/soil-sensor-go/internal/archive/postgres"
	sqliteArchive "github.com/pv/soil-sensor-go/internal/archive/sqlite"
	"github.com/pv/soil-sensor-go/internal/seriesio"
	"github.com/pv/soil-sensor-go/pkg/config"
	"github.com/pv/soil-sensor-go/pkg/gasflux"
)

type options struct {
	input      string
	chambers   string
	collar     string
	replicate  string
	volumeML   float64
	areaCM2    float64
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

	meas, err := loadMeasurement(opts)
	if err != nil {
		log.Fatalf("load measurement: %v", err)
	}

	result, err := gasflux.Compute(meas.Series, meas.Geometry)
	if err != nil {
		log.Fatalf("compute flux: %v", err)
	}

	printResult(meas, result)

	if opts.archiveDSN != "" {
		ctx := context.Background()
		store, err := openArchive(ctx, opts.archiveDSN)
		if err != nil {
			log.Fatalf("archive: %v", err)
		}
		defer store.Close()
		rec := archive.FluxRecord{
			RunID:     archive.NewRunID(),
			Collar:    meas.Collar,
			Replicate: meas.Replicate,
			SavedAt:   time.Now(),
			Result:    result,
		}
		if err := store.SaveFlux(ctx, rec); err != nil {
			log.Fatalf("archive: %v", err)
		}
		fmt.Printf("archived run %s to %s\n", rec.RunID, opts.archiveDSN)
	}
}

// loadMeasurement выбирает формат по расширению входного файла и
// дополняет геометрию из флагов или реестра камер. Явные флаги
// имеют приоритет над JSON и реестром.
func loadMeasurement(opts options) (seriesio.ChamberMeasurement, error) {
	var meas seriesio.ChamberMeasurement

	switch strings.ToLower(filepath.Ext(opts.input)) {
	case ".json":
		var err error
		meas, err = seriesio.ReadChamberJSON(opts.input)
		if err != nil {
			return meas, err
		}
	default:
		series, err := seriesio.ReadChamberCSV(opts.input)
		if err != nil {
			return meas, err
		}
		meas.Series = series
	}

	if opts.collar != "" {
		meas.Collar = opts.collar
	}
	if opts.replicate != "" {
		meas.Replicate = opts.replicate
	}

	if opts.volumeML > 0 && opts.areaCM2 > 0 {
		meas.Geometry = gasflux.Geometry{
			VolumeM3: opts.volumeML * 1e-6,
			AreaM2:   opts.areaCM2 * 1e-4,
		}
	} else if meas.Geometry == (gasflux.Geometry{}) {
		if opts.chambers == "" {
			return meas, fmt.Errorf("no chamber geometry: pass --volume-ml/--area-cm2 or --chambers")
		}
		reg, err := config.Load(opts.chambers)
		if err != nil {
			return meas, err
		}
		chamber, err := reg.Resolve(meas.Collar)
		if err != nil {
			return meas, err
		}
		volumeM3, areaM2 := chamber.SI()
		meas.Geometry = gasflux.Geometry{VolumeM3: volumeM3, AreaM2: areaM2}
	}
	return meas, nil
}

func printResult(meas seriesio.ChamberMeasurement, r gasflux.Result) {
	label := meas.Collar
	if meas.Replicate != "" {
		label += " " + meas.Replicate
	}
	if label != "" {
		fmt.Printf("Measurement: %s (%d samples)\n", label, len(meas.Series.TimeS))
	} else {
		fmt.Printf("Measurement: %d samples\n", len(meas.Series.TimeS))
	}
	fmt.Printf("  CO2: %10.4f umol m-2 s-1  (R2 = %.4f)\n", r.FluxCO2, r.R2CO2)
	fmt.Printf("  CH4: %10.4f nmol m-2 s-1  (R2 = %.4f)\n", r.FluxCH4, r.R2CH4)
	fmt.Printf("  H2O: %10.4f umol m-2 s-1  (R2 = %.4f)\n", r.FluxH2O, r.R2H2O)
}

func parseFlags() options {
	var opt options

	flag.StringVar(&opt.input, "input", "", "path to chamber measurement (JSON or CSV)")
	flag.StringVar(&opt.chambers, "chambers", "", "path to YAML chamber registry")
	flag.StringVar(&opt.collar, "collar", "", "collar name (overrides the one from JSON)")
	flag.StringVar(&opt.replicate, "replicate", "", "replicate label (overrides the one from JSON)")
	flag.Float64Var(&opt.volumeML, "volume-ml", 0, "total system volume [ml], with --area-cm2 overrides registry")
	flag.Float64Var(&opt.areaCM2, "area-cm2", 0, "chamber area [cm2], with --volume-ml overrides registry")
	flag.StringVar(&opt.archiveDSN, "archive", "", "optional archive DSN (sqlite path, postgres://, clickhouse://, http:// InfluxDB)")
	flag.StringVar(&opt.logFile, "log-file", "", "write logs to file instead of stderr")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input col_1_rep_1.json [options]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Computes chamber gas fluxes from LI-7810 concentration ramps. Example:")
		fmt.Fprintf(flag.CommandLine.Output(), "  %s --input ramp.csv --chambers chambers.yaml --collar col_1\n\n", os.Args[0])
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
