package collector

import (
	"time"

	"github.com/a62mds/stock-trading/internal/dataset"
	"github.com/a62mds/stock-trading/internal/model"
)

// Fetcher defines the interface for fetching historical price data.
// Start is the latest date already held; implementations advance it by
// one interval unit before calling out, so the window excludes data the
// caller already has. End is the inclusive upper bound of the request.
type Fetcher interface {
	FetchRange(symbol string, start, end time.Time, interval model.Interval) (*dataset.Dataset, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Data  map[string]*dataset.Dataset
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRange(symbol string, start, end time.Time, interval model.Interval) (*dataset.Dataset, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	start = interval.Advance(model.Day(start))
	if !start.Before(model.Day(end)) {
		return dataset.New(symbol, nil), nil
	}
	if ds, ok := m.Data[symbol]; ok {
		return ds.MoreRecentThan(start).LessRecentThan(end), nil
	}
	return dataset.New(symbol, nil), nil
}
