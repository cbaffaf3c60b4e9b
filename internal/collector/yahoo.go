package collector

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/a62mds/stock-trading/internal/dataset"
	"github.com/a62mds/stock-trading/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com/v7/finance/download"

// TransportError wraps a failure of the remote fetch, unchanged, with
// enough context to diagnose which request failed.
type TransportError struct {
	Symbol string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// YahooFetcher implements Fetcher using the Yahoo Finance historical
// CSV download endpoint.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// FetchRange downloads price history for the window (start, end]. Start
// is advanced by one interval unit first, so a caller passing the
// latest date it already holds gets only newer rows. A zero-width or
// negative window yields an empty dataset without any HTTP call.
func (f *YahooFetcher) FetchRange(symbol string, start, end time.Time, interval model.Interval) (*dataset.Dataset, error) {
	start = interval.Advance(model.Day(start))
	end = model.Day(end)
	if !start.Before(end) {
		return dataset.New(symbol, nil), nil
	}

	u := f.downloadURL(symbol, start, end, interval)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Symbol: symbol, URL: u, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Symbol: symbol, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Symbol: symbol, URL: u, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	ds, err := dataset.Parse(symbol, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse response for %s: %w", symbol, err)
	}
	return ds, nil
}

// downloadURL builds the v7 download URL: Unix-second period bounds,
// interval selector, events=history and includeAdjustedClose=true.
func (f *YahooFetcher) downloadURL(symbol string, start, end time.Time, interval model.Interval) string {
	q := url.Values{}
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.Unix()))
	q.Set("interval", string(interval))
	q.Set("events", "history")
	q.Set("includeAdjustedClose", "true")
	return fmt.Sprintf("%s/%s?%s", f.BaseURL, url.PathEscape(symbol), q.Encode())
}
