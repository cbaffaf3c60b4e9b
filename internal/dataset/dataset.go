// Package dataset provides the ordered, date-keyed price series that the
// rest of the system is built on. Every transforming operation returns a
// new Dataset value; nothing mutates a dataset after construction, so
// callers may hold and compare snapshots freely.
package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/a62mds/stock-trading/internal/model"
)

// Dataset is an immutable series of OHLCV records for one symbol,
// sorted by ascending date.
type Dataset struct {
	Symbol  string
	records []model.Record

	// Lazily computed bounds. Safe to cache because records never
	// change after construction; every derived Dataset starts fresh.
	earliest, latest time.Time
	boundsComputed   bool
}

// New builds a dataset from a record batch. Records are sorted by
// ascending date; duplicate dates within a single batch are allowed
// here and resolved by Combine. A nil or empty batch is a valid
// "no data" dataset.
func New(symbol string, records []model.Record) *Dataset {
	rs := make([]model.Record, len(records))
	for i, r := range records {
		r.Date = model.Day(r.Date)
		rs[i] = r
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Date.Before(rs[j].Date) })
	return &Dataset{Symbol: symbol, records: rs}
}

// Len returns the number of records. Callers test Len() > 0 to decide
// whether a fetch or filter yielded anything.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the record slice in date order.
func (d *Dataset) Records() []model.Record {
	out := make([]model.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Combine returns the date-keyed union of d and other. On a date
// collision the receiver's record wins: merging a fresh fetch into an
// already-held series keeps the held data for any overlapping dates.
// Repeating the same merge leaves the result unchanged.
func (d *Dataset) Combine(other *Dataset) *Dataset {
	seen := make(map[time.Time]bool, len(d.records))
	merged := make([]model.Record, 0, len(d.records)+other.Len())
	for _, r := range d.records {
		if seen[r.Date] {
			continue // first occurrence wins within the receiver too
		}
		seen[r.Date] = true
		merged = append(merged, r)
	}
	for _, r := range other.records {
		if seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		merged = append(merged, r)
	}
	return New(d.Symbol, merged)
}

// MoreRecentThan returns the records dated on or after start.
func (d *Dataset) MoreRecentThan(start time.Time) *Dataset {
	start = model.Day(start)
	return d.filter(func(r model.Record) bool { return !r.Date.Before(start) })
}

// LessRecentThan returns the records dated on or before end.
func (d *Dataset) LessRecentThan(end time.Time) *Dataset {
	end = model.Day(end)
	return d.filter(func(r model.Record) bool { return !r.Date.After(end) })
}

func (d *Dataset) filter(keep func(model.Record) bool) *Dataset {
	var rs []model.Record
	for _, r := range d.records {
		if keep(r) {
			rs = append(rs, r)
		}
	}
	return New(d.Symbol, rs)
}

// OnDate returns the record for the given calendar day. The second
// return value reports whether such a record exists; absence is a
// normal outcome, not an error.
func (d *Dataset) OnDate(day time.Time) (model.Record, bool) {
	day = model.Day(day)
	// Records are sorted, so binary search.
	i := sort.Search(len(d.records), func(i int) bool {
		return !d.records[i].Date.Before(day)
	})
	if i < len(d.records) && d.records[i].Date.Equal(day) {
		return d.records[i], true
	}
	return model.Record{}, false
}

// EarliestDate returns the date of the oldest record, or false if the
// dataset is empty.
func (d *Dataset) EarliestDate() (time.Time, bool) {
	d.computeBounds()
	return d.earliest, len(d.records) > 0
}

// LatestDate returns the date of the most recent record, or false if
// the dataset is empty.
func (d *Dataset) LatestDate() (time.Time, bool) {
	d.computeBounds()
	return d.latest, len(d.records) > 0
}

func (d *Dataset) computeBounds() {
	if d.boundsComputed || len(d.records) == 0 {
		return
	}
	d.earliest = d.records[0].Date
	d.latest = d.records[len(d.records)-1].Date
	d.boundsComputed = true
}

// Column extracts one numeric price column in date order. Only the four
// price fields are addressable; Volume and Date are not valid indicator
// sources.
func (d *Dataset) Column(field string) ([]float64, error) {
	pick, ok := priceField(field)
	if !ok {
		return nil, fmt.Errorf("dataset has no numeric price field %q", field)
	}
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = pick(r)
	}
	return out, nil
}

// Dates returns the date axis in ascending order.
func (d *Dataset) Dates() []time.Time {
	out := make([]time.Time, len(d.records))
	for i, r := range d.records {
		out[i] = r.Date
	}
	return out
}

// HasField reports whether field names one of the numeric price fields.
func HasField(field string) bool {
	_, ok := priceField(field)
	return ok
}

func priceField(field string) (func(model.Record) float64, bool) {
	switch field {
	case model.FieldOpen:
		return func(r model.Record) float64 { return r.Open }, true
	case model.FieldHigh:
		return func(r model.Record) float64 { return r.High }, true
	case model.FieldLow:
		return func(r model.Record) float64 { return r.Low }, true
	case model.FieldClose:
		return func(r model.Record) float64 { return r.Close }, true
	default:
		return nil, false
	}
}
