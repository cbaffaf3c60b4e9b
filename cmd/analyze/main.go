package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/a62mds/stock-trading/internal/collector"
	"github.com/a62mds/stock-trading/internal/dataset"
	"github.com/a62mds/stock-trading/internal/indicator"
	"github.com/a62mds/stock-trading/internal/model"
	"github.com/a62mds/stock-trading/internal/updater"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		startFlag    = flag.String("start", "", "greatest lower bound on the date range (YYYY-MM-DD)")
		endFlag      = flag.String("end", "", "least upper bound on the date range (YYYY-MM-DD)")
		intervalFlag = flag.String("interval", "1d", "interval between datapoints (1d, 1wk, 1mo)")
		update       = flag.Bool("update", false, "download and merge newer data before analyzing")
		dataDir      = flag.String("data-dir", "data", "directory holding per-symbol CSV files")
		field        = flag.String("field", "Close", "price field the MACD is computed over")
		fastSpan     = flag.Int("fast", indicator.DefaultFastSpan, "fast EWMA span")
		slowSpan     = flag.Int("slow", indicator.DefaultSlowSpan, "slow EWMA span")
		signalSpan   = flag.Int("signal", indicator.DefaultSignalSpan, "signal EWMA span")
		outPath      = flag.String("out", "", "optional path to write the MACD-enriched CSV")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] SYMBOL\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	symbol := flag.Arg(0)

	if err := run(symbol, *startFlag, *endFlag, *intervalFlag, *update, *dataDir, *field, *fastSpan, *slowSpan, *signalSpan, *outPath); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func run(symbol, startStr, endStr, intervalStr string, update bool, dataDir, field string, fastSpan, slowSpan, signalSpan int, outPath string) error {
	interval, err := model.ParseInterval(intervalStr)
	if err != nil {
		return err
	}
	macd, err := indicator.NewMACD(field, fastSpan, slowSpan, signalSpan)
	if err != nil {
		return err
	}

	u := updater.New(collector.NewYahooFetcher(os.Getenv("HTTPS_PROXY")), dataDir, nil)

	var ds *dataset.Dataset
	if update {
		log.Printf("[INFO] updating data for %s...", symbol)
		ds, err = u.Update(symbol, interval)
	} else {
		ds, err = u.Load(symbol)
	}
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no data for symbol %s (try -update)", symbol)
	}

	if startStr != "" {
		start, err := model.ParseDate(startStr)
		if err != nil {
			return err
		}
		ds = ds.MoreRecentThan(start)
	}
	if endStr != "" {
		end, err := model.ParseDate(endStr)
		if err != nil {
			return err
		}
		ds = ds.LessRecentThan(end)
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no data for %s in the requested date range", symbol)
	}

	enriched, err := macd.Enrich(ds)
	if err != nil {
		return err
	}
	fmt.Print(formatSummary(enriched, 10))

	if outPath != "" {
		if err := enriched.Save(outPath, true); err != nil {
			return err
		}
		log.Printf("[INFO] wrote enriched CSV to %s", outPath)
	}
	return nil
}

// formatSummary renders the dataset bounds and the last tail rows of
// the MACD columns as a fixed-width table.
func formatSummary(e *indicator.Enriched, tail int) string {
	var b strings.Builder
	ds := e.Source

	earliest, _ := ds.EarliestDate()
	latest, _ := ds.LatestDate()
	b.WriteString(fmt.Sprintf("%s: %d records, %s .. %s\n\n",
		ds.Symbol, ds.Len(), earliest.Format(model.DateLayout), latest.Format(model.DateLayout)))

	b.WriteString(fmt.Sprintf("%-12s %10s %12s %12s %12s\n",
		"Date", "Close", "MACD", "Signal", "Histogram"))
	start := ds.Len() - tail
	if start < 0 {
		start = 0
	}
	records := ds.Records()
	for i := start; i < ds.Len(); i++ {
		b.WriteString(fmt.Sprintf("%-12s %10.2f %12.4f %12.4f %12.4f\n",
			records[i].Date.Format(model.DateLayout),
			records[i].Close,
			e.MACD.Line[i],
			e.MACD.Signal[i],
			e.MACD.Histogram[i]))
	}
	return b.String()
}
