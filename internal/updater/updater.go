// Package updater orchestrates the fetch-merge-persist cycle: load the
// held series from disk, fetch anything newer, fold it in, write the
// result back.
package updater

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/a62mds/stock-trading/internal/collector"
	"github.com/a62mds/stock-trading/internal/dataset"
	"github.com/a62mds/stock-trading/internal/model"
	"github.com/a62mds/stock-trading/internal/recorder"
)

// Fetches with no held data start from the Unix epoch.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Updater runs update cycles against a data directory laid out as
// <DataDir>/<symbol>/<symbol>.csv.
type Updater struct {
	Fetcher  collector.Fetcher
	DataDir  string
	Recorder recorder.Recorder
	Now      func() time.Time // defaults to time.Now
}

// New creates an Updater. rec may be nil, in which case no history is kept.
func New(fetcher collector.Fetcher, dataDir string, rec recorder.Recorder) *Updater {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Updater{Fetcher: fetcher, DataDir: dataDir, Recorder: rec, Now: time.Now}
}

// CSVPath returns the on-disk location of a symbol's series.
func (u *Updater) CSVPath(symbol string) string {
	return filepath.Join(u.DataDir, symbol, symbol+".csv")
}

// Load reads the held series for a symbol, or returns an empty dataset
// if none has been saved yet.
func (u *Updater) Load(symbol string) (*dataset.Dataset, error) {
	path := u.CSVPath(symbol)
	ds, err := dataset.Load(symbol, path)
	if err != nil {
		var notFound *dataset.NotFoundError
		if errors.As(err, &notFound) {
			return dataset.New(symbol, nil), nil
		}
		return nil, err
	}
	return ds, nil
}

// Update loads the held series, fetches records newer than what is
// held, merges them in (held data wins on overlapping dates) and
// persists the result. The merged dataset is returned either way, so a
// caller can keep working with whatever data exists.
func (u *Updater) Update(symbol string, interval model.Interval) (*dataset.Dataset, error) {
	held, err := u.Load(symbol)
	if err != nil {
		return nil, err
	}

	start := epoch
	if latest, ok := held.LatestDate(); ok {
		start = latest
	}
	fetched, err := u.Fetcher.FetchRange(symbol, start, u.Now(), interval)
	if err != nil {
		return held, fmt.Errorf("update %s: %w", symbol, err)
	}
	if fetched.Len() == 0 {
		log.Printf("[INFO] %s: no new data since %s", symbol, start.Format(model.DateLayout))
		return held, nil
	}

	merged := held.Combine(fetched)

	path := u.CSVPath(symbol)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return merged, fmt.Errorf("create data dir for %s: %w", symbol, err)
	}
	if err := merged.Save(path, true); err != nil {
		return merged, fmt.Errorf("save %s: %w", symbol, err)
	}

	evt := &recorder.UpdateEvent{
		Symbol:    symbol,
		Interval:  string(interval),
		Source:    u.Fetcher.Name(),
		RowsHeld:  held.Len(),
		RowsAdded: merged.Len() - held.Len(),
	}
	evt.Earliest, _ = merged.EarliestDate()
	evt.Latest, _ = merged.LatestDate()
	if err := u.Recorder.RecordUpdate(evt); err != nil {
		log.Printf("[ERROR] record update for %s: %v", symbol, err)
	}

	log.Printf("[INFO] %s: %d records held, %d added", symbol, evt.RowsHeld, evt.RowsAdded)
	return merged, nil
}
