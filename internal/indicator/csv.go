package indicator

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/a62mds/stock-trading/internal/dataset"
	"github.com/a62mds/stock-trading/internal/model"
)

// Save writes the enriched table as CSV: the six price columns followed
// by the five MACD columns, one row per record. Overwrite semantics
// match dataset.Save.
func (e *Enriched) Save(path string, overwrite bool) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return &dataset.IsADirectoryError{Path: path}
		}
		if !overwrite {
			return &dataset.AlreadyExistsError{Path: path}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, model.Fields...), Columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %q: %w", path, err)
	}
	for i, r := range e.Source.Records() {
		row := []string{
			r.Date.Format(model.DateLayout),
			formatFloat(r.Open),
			formatFloat(r.High),
			formatFloat(r.Low),
			formatFloat(r.Close),
			strconv.FormatInt(r.Volume, 10),
			formatFloat(e.MACD.FastEWMA[i]),
			formatFloat(e.MACD.SlowEWMA[i]),
			formatFloat(e.MACD.Line[i]),
			formatFloat(e.MACD.Signal[i]),
			formatFloat(e.MACD.Histogram[i]),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row to %q: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %q: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
