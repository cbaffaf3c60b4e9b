package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/a62mds/stock-trading/internal/model"
)

// Parse reads delimited rows into a dataset. The header row must carry
// all six schema columns (extra columns, e.g. Yahoo's "Adj Close", are
// ignored); a header missing any of them fails with *SchemaError
// naming every absent field.
func Parse(symbol string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Symbol: symbol, Missing: model.Fields}
	}
	if err != nil {
		return nil, fmt.Errorf("read header for %s: %w", symbol, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	var missing []string
	for _, f := range model.Fields {
		if _, ok := index[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Symbol: symbol, Missing: missing}
	}

	var records []model.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d for %s: %w", line, symbol, err)
		}
		if hasNull(row, index) {
			continue // Yahoo emits "null" rows for non-trading days
		}
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("row %d for %s: %w", line, symbol, err)
		}
		records = append(records, rec)
	}
	return New(symbol, records), nil
}

// Load reads a dataset from a CSV file. A missing path fails with
// *NotFoundError.
func Load(symbol, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	return Parse(symbol, f)
}

// Save writes the dataset as CSV: the fixed six-column header, one row
// per record, dates as YYYY-MM-DD. An existing target fails with
// *AlreadyExistsError unless overwrite is set, and a directory target
// with *IsADirectoryError.
func (d *Dataset) Save(path string, overwrite bool) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return &IsADirectoryError{Path: path}
		}
		if !overwrite {
			return &AlreadyExistsError{Path: path}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(model.Fields); err != nil {
		return fmt.Errorf("write header to %q: %w", path, err)
	}
	for _, r := range d.records {
		row := []string{
			r.Date.Format(model.DateLayout),
			formatPrice(r.Open),
			formatPrice(r.High),
			formatPrice(r.Low),
			formatPrice(r.Close),
			strconv.FormatInt(r.Volume, 10),
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

func hasNull(row []string, index map[string]int) bool {
	for _, f := range model.Fields {
		i := index[f]
		if i >= len(row) || row[i] == "null" || row[i] == "" {
			return true
		}
	}
	return false
}

func parseRow(row []string, index map[string]int) (model.Record, error) {
	var rec model.Record
	date, err := model.ParseDate(row[index[model.FieldDate]])
	if err != nil {
		return rec, err
	}
	rec.Date = date

	prices := []struct {
		field string
		dst   *float64
	}{
		{model.FieldOpen, &rec.Open},
		{model.FieldHigh, &rec.High},
		{model.FieldLow, &rec.Low},
		{model.FieldClose, &rec.Close},
	}
	for _, p := range prices {
		v, err := strconv.ParseFloat(row[index[p.field]], 64)
		if err != nil {
			return rec, fmt.Errorf("parse %s: %w", p.field, err)
		}
		*p.dst = v
	}

	vol, err := strconv.ParseInt(row[index[model.FieldVolume]], 10, 64)
	if err != nil {
		return rec, fmt.Errorf("parse %s: %w", model.FieldVolume, err)
	}
	if vol < 0 {
		return rec, fmt.Errorf("negative volume %d", vol)
	}
	rec.Volume = vol
	return rec, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
