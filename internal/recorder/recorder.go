package recorder

import "time"

// UpdateEvent describes one completed fetch-merge-persist cycle.
type UpdateEvent struct {
	Symbol    string
	Interval  string
	Source    string // fetcher name
	RowsHeld  int    // records before the merge
	RowsAdded int    // new records contributed by the fetch
	Earliest  time.Time
	Latest    time.Time
}

// Recorder persists update history for later analysis.
type Recorder interface {
	RecordUpdate(evt *UpdateEvent) error
	Close() error
}
