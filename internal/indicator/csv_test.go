package indicator

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestEnrichedSave(t *testing.T) {
	ds := seriesDataset(t, []float64{10, 11, 12, 13})
	macd := NewDefaultMACD()
	e, err := macd.Enrich(ds)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	path := filepath.Join(t.TempDir(), "TEST-macd.csv")
	if err := e.Save(path, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != ds.Len()+1 {
		t.Fatalf("rows = %d, want %d", len(rows), ds.Len()+1)
	}

	header := rows[0]
	want := []string{
		"Date", "Open", "High", "Low", "Close", "Volume",
		"Fast EWMA", "Slow EWMA", "MACD Line", "MACD Signal", "MACD Histogram",
	}
	if len(header) != len(want) {
		t.Fatalf("header = %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}
	if rows[1][0] != "2021-01-04" {
		t.Errorf("first data row date = %q, want 2021-01-04", rows[1][0])
	}
}
