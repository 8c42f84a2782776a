// gen-sensor-data генерирует синтетический экспорт TMS-4 для проверки
// soilvwc: суточный синус температуры и шумящий отсчёт влажности.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"
)

type options struct {
	output   string
	points   int
	startTS  string
	step     time.Duration
	baseRaw  float64
	baseTemp float64
	seed     int64
}

func main() {
	opts := parseFlags()

	start, err := time.Parse(time.RFC3339, opts.startTS)
	if err != nil {
		log.Fatalf("invalid --start: %v", err)
	}
	rng := rand.New(rand.NewSource(opts.seed))

	f, err := os.Create(opts.output)
	if err != nil {
		log.Fatalf("create %s: %v", opts.output, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	ts := start
	for i := 0; i < opts.points; i++ {
		dayPhase := float64(ts.Hour())/24.0 + float64(ts.Minute())/(24.0*60.0)
		temp := opts.baseTemp + 4.5*math.Sin(2*math.Pi*dayPhase)
		raw := opts.baseRaw + 60*math.Sin(float64(i)/40) + rng.Float64()*30

		fmt.Fprintf(w, "%d;%s;0;%.4f;%.4f;%.4f;%d;0;0\n",
			i, ts.Format("2006.01.02 15:04"), temp, temp, temp, int(raw))
		ts = ts.Add(opts.step)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flush: %v", err)
	}
	fmt.Printf("wrote %d rows to %s\n", opts.points, opts.output)
}

func parseFlags() options {
	var opt options

	flag.StringVar(&opt.output, "output", "tms-data.csv", "output CSV path")
	flag.IntVar(&opt.points, "points", 96, "number of rows to generate")
	flag.StringVar(&opt.startTS, "start", "2024-06-01T00:00:00Z", "timestamp of the first row (RFC3339)")
	flag.DurationVar(&opt.step, "step", 15*time.Minute, "interval between rows")
	flag.Float64Var(&opt.baseRaw, "base-raw", 1450, "baseline moisture count")
	flag.Float64Var(&opt.baseTemp, "base-temp", 8.0, "baseline soil temperature [C]")
	flag.Int64Var(&opt.seed, "seed", 1, "random seed")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Generates a synthetic TMS-4 export for soilvwc.")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opt
}
