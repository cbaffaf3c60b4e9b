package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used throughout: CSV files,
// CLI flags and the Yahoo download API all speak YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Field names of the six-column record schema, in persisted order.
const (
	FieldDate   = "Date"
	FieldOpen   = "Open"
	FieldHigh   = "High"
	FieldLow    = "Low"
	FieldClose  = "Close"
	FieldVolume = "Volume"
)

// Fields lists the schema columns in the order they are written to disk.
var Fields = []string{FieldDate, FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// Record is a single OHLCV datapoint for one trading period.
// Date carries no time-of-day; Day normalizes whatever it holds.
type Record struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Day truncates a timestamp to midnight UTC so records fetched, parsed
// and constructed by hand compare equal on the same calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Interval is the spacing between successive records.
type Interval string

const (
	IntervalDaily   Interval = "1d"
	IntervalWeekly  Interval = "1wk"
	IntervalMonthly Interval = "1mo"
)

// Intervals lists the supported interval selectors.
var Intervals = []Interval{IntervalDaily, IntervalWeekly, IntervalMonthly}

// ParseInterval validates an interval selector string.
func ParseInterval(s string) (Interval, error) {
	for _, iv := range Intervals {
		if s == string(iv) {
			return iv, nil
		}
	}
	return "", fmt.Errorf("invalid interval: %q (valid: 1d, 1wk, 1mo)", s)
}

// Advance moves a date forward by one interval unit. Used to turn the
// latest date already held into an exclusive lower bound for a fetch.
func (iv Interval) Advance(t time.Time) time.Time {
	switch iv {
	case IntervalWeekly:
		return t.AddDate(0, 0, 7)
	case IntervalMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}
