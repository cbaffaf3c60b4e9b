// Package indicator derives technical indicator series from price
// datasets. MACD is the one indicator in scope: fast and slow EWMAs of
// a chosen price field, their difference, and a smoothed signal line.
package indicator

import (
	"fmt"
	"time"

	"github.com/a62mds/stock-trading/internal/dataset"
	"github.com/a62mds/stock-trading/internal/model"
)

// Column names of the derived MACD series, in persisted order.
const (
	ColFastEWMA  = "Fast EWMA"
	ColSlowEWMA  = "Slow EWMA"
	ColLine      = "MACD Line"
	ColSignal    = "MACD Signal"
	ColHistogram = "MACD Histogram"
)

// Columns lists the derived column names in the order they are written
// after the price columns.
var Columns = []string{ColFastEWMA, ColSlowEWMA, ColLine, ColSignal, ColHistogram}

// Default MACD parameters: 12/26/9 on Close.
const (
	DefaultFastSpan   = 12
	DefaultSlowSpan   = 26
	DefaultSignalSpan = 9
)

// ConfigurationError reports invalid MACD parameters.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "macd configuration: " + e.Reason
}

// Series holds the five derived columns aligned one-to-one with the
// source dataset's dates. No warm-up values are dropped; the recursive
// EWMA is defined from the first index.
type Series struct {
	Dates     []time.Time
	FastEWMA  []float64
	SlowEWMA  []float64
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// Len returns the number of datapoints in the series.
func (s *Series) Len() int { return len(s.Dates) }

// Enriched couples a price dataset with its computed MACD columns for
// consumers that want a single table sharing the date axis.
type Enriched struct {
	Source *dataset.Dataset
	MACD   *Series
}

// MACD computes the Moving Average Convergence/Divergence indicator
// over one field of a dataset. Results are memoized per dataset
// instance: computing twice against the same dataset returns the same
// Series without rework.
type MACD struct {
	Field      string
	FastSpan   int
	SlowSpan   int
	SignalSpan int

	computed map[*dataset.Dataset]*Series
}

// NewMACD validates the configuration. The fast span must be strictly
// less than the slow span (a fast average that reacts no faster than
// the slow one makes the indicator meaningless), all spans positive,
// and the field one of the numeric price fields.
func NewMACD(field string, fastSpan, slowSpan, signalSpan int) (*MACD, error) {
	if fastSpan <= 0 || slowSpan <= 0 || signalSpan <= 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("spans must be positive, got fast=%d slow=%d signal=%d", fastSpan, slowSpan, signalSpan),
		}
	}
	if fastSpan >= slowSpan {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("fast span %d must be less than slow span %d", fastSpan, slowSpan),
		}
	}
	if !dataset.HasField(field) {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("no numeric price field %q (valid: %s, %s, %s, %s)",
				field, model.FieldOpen, model.FieldHigh, model.FieldLow, model.FieldClose),
		}
	}
	return &MACD{
		Field:      field,
		FastSpan:   fastSpan,
		SlowSpan:   slowSpan,
		SignalSpan: signalSpan,
		computed:   make(map[*dataset.Dataset]*Series),
	}, nil
}

// NewDefaultMACD returns the conventional 12/26/9 configuration over
// the Close field.
func NewDefaultMACD() *MACD {
	m, err := NewMACD(model.FieldClose, DefaultFastSpan, DefaultSlowSpan, DefaultSignalSpan)
	if err != nil {
		panic(err) // defaults are always valid
	}
	return m
}

// Compute derives the five MACD columns from the configured field of
// ds. The source field is checked before any computation; on failure
// nothing partial is produced.
func (m *MACD) Compute(ds *dataset.Dataset) (*Series, error) {
	if s, ok := m.computed[ds]; ok {
		return s, nil
	}
	values, err := ds.Column(m.Field)
	if err != nil {
		return nil, fmt.Errorf("macd over %s: %w", ds.Symbol, err)
	}

	s := &Series{
		Dates:    ds.Dates(),
		FastEWMA: ewma(values, m.FastSpan),
		SlowEWMA: ewma(values, m.SlowSpan),
	}
	n := len(values)
	s.Line = make([]float64, n)
	for i := 0; i < n; i++ {
		s.Line[i] = s.FastEWMA[i] - s.SlowEWMA[i]
	}
	s.Signal = ewma(s.Line, m.SignalSpan)
	s.Histogram = make([]float64, n)
	for i := 0; i < n; i++ {
		s.Histogram[i] = s.Line[i] - s.Signal[i]
	}

	m.computed[ds] = s
	return s, nil
}

// Enrich computes the MACD columns and returns them coupled with their
// source dataset.
func (m *MACD) Enrich(ds *dataset.Dataset) (*Enriched, error) {
	s, err := m.Compute(ds)
	if err != nil {
		return nil, err
	}
	return &Enriched{Source: ds, MACD: s}, nil
}

// ewma computes the exponentially weighted moving average with
// alpha = 2/(span+1), seeded with the first value:
//
//	ewma[0] = v[0]
//	ewma[i] = alpha*v[i] + (1-alpha)*ewma[i-1]
func ewma(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
