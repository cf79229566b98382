package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"bptree/internal/bench"
	"bptree/logger"
)

var (
	sizes   = flag.String("sizes", "1000,10000,100000", "comma separated key counts")
	order   = flag.Int("order", 4, "B+ tree order")
	sample  = flag.Int("sample", 1000, "keys searched and deleted per run")
	seed    = flag.Uint64("seed", 1, "shuffle seed")
	csvPath = flag.String("csv", "", "also write results as CSV to this file")
)

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	ns, err := parseSizes(*sizes)
	if err != nil {
		log.WithError(err).Fatal("invalid -sizes")
	}

	cfg := bench.DefaultConfig()
	cfg.Sizes = ns
	cfg.Order = *order
	cfg.Sample = *sample
	cfg.Seed = *seed
	cfg.Logger = logger.NewLogrus(log)

	results, err := bench.Run(cfg)
	if err != nil {
		log.WithError(err).Fatal("benchmark failed")
	}
	if err := bench.WriteTable(os.Stdout, results); err != nil {
		log.WithError(err).Fatal("write table")
	}

	if *csvPath == "" {
		return
	}
	f, err := os.Create(*csvPath)
	if err != nil {
		log.WithError(err).Fatal("create csv")
	}
	defer f.Close()
	if err := bench.WriteCSV(f, results); err != nil {
		log.WithError(err).Fatal("write csv")
	}
}
