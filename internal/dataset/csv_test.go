package dataset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a62mds/stock-trading/internal/model"
)

func TestParse_MissingColumns(t *testing.T) {
	in := "Date,Open,Close\n2021-01-04,10,10.5\n"
	_, err := Parse("TEST", strings.NewReader(in))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	want := []string{"High", "Low", "Volume"}
	if len(schemaErr.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", schemaErr.Missing, want)
	}
	for i, f := range want {
		if schemaErr.Missing[i] != f {
			t.Errorf("missing[%d] = %q, want %q", i, schemaErr.Missing[i], f)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("TEST", strings.NewReader(""))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
}

func TestParse_IgnoresExtraColumns(t *testing.T) {
	in := "Date,Open,High,Low,Close,Adj Close,Volume\n" +
		"2021-01-04,10,11,9,10.5,10.4,100\n"
	ds, err := Parse("TEST", strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("len = %d, want 1", ds.Len())
	}
	r, _ := ds.OnDate(day("2021-01-04"))
	if r.Close != 10.5 || r.Volume != 100 {
		t.Errorf("record = %+v", r)
	}
}

func TestParse_SkipsNullRows(t *testing.T) {
	in := "Date,Open,High,Low,Close,Volume\n" +
		"2021-01-04,10,11,9,10.5,100\n" +
		"2021-01-05,null,null,null,null,null\n" +
		"2021-01-06,11,12,10,11.5,120\n"
	ds, err := Parse("TEST", strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("len = %d, want 2 (null row skipped)", ds.Len())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	records := []model.Record{
		{Date: day("2021-01-04"), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Date: day("2021-01-05"), Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 150},
		{Date: day("2021-01-06"), Open: 11, High: 12.25, Low: 10.75, Close: 11.125, Volume: 175},
	}
	ds := New("TEST", records)

	path := filepath.Join(t.TempDir(), "TEST.csv")
	if err := ds.Save(path, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load("TEST", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := loaded.Records()
	if len(got) != len(records) {
		t.Fatalf("len = %d, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("TEST", filepath.Join(t.TempDir(), "absent.csv"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestSave_AlreadyExists(t *testing.T) {
	ds := New("TEST", []model.Record{rec("2021-01-04", 10)})
	path := filepath.Join(t.TempDir(), "TEST.csv")
	if err := ds.Save(path, false); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	err := ds.Save(path, false)
	var exists *AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected *AlreadyExistsError, got %v", err)
	}

	if err := ds.Save(path, true); err != nil {
		t.Errorf("Save with overwrite: %v", err)
	}
}

func TestSave_IsADirectory(t *testing.T) {
	ds := New("TEST", []model.Record{rec("2021-01-04", 10)})
	err := ds.Save(t.TempDir(), true)
	var isDir *IsADirectoryError
	if !errors.As(err, &isDir) {
		t.Fatalf("expected *IsADirectoryError, got %v", err)
	}
}

func TestSave_EmptyDataset(t *testing.T) {
	ds := New("TEST", nil)
	path := filepath.Join(t.TempDir(), "TEST.csv")
	if err := ds.Save(path, false); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	loaded, err := Load("TEST", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("len = %d, want 0", loaded.Len())
	}
}
