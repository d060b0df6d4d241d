package domain

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MinNumber and MaxNumber bound the 6/45 lottery number space.
	MinNumber = 1
	MaxNumber = 45

	// TableSize is the required number of records in a frequency table,
	// one per playable number.
	TableSize = MaxNumber - MinNumber + 1
)

// SourceStatus tags which origin produced a frequency table. The draw
// engine never looks at it; it exists for the frontend's notice only.
type SourceStatus string

const (
	SourceLive     SourceStatus = "live"
	SourceFallback SourceStatus = "fallback"
)

// FrequencyRecord is the historical appearance count of one number.
type FrequencyRecord struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// FrequencyTable is the full per-number statistic: exactly one record
// for every number in [MinNumber, MaxNumber].
type FrequencyTable []FrequencyRecord

// Validate checks the table invariant: exactly TableSize records,
// numbers forming the exact set {MinNumber..MaxNumber}, counts >= 0.
func (t FrequencyTable) Validate() error {
	if len(t) != TableSize {
		return fmt.Errorf("frequency table has %d records, want %d", len(t), TableSize)
	}

	seen := make(map[int]bool, TableSize)
	for _, r := range t {
		if r.Number < MinNumber || r.Number > MaxNumber {
			return fmt.Errorf("frequency table number %d out of range [%d,%d]", r.Number, MinNumber, MaxNumber)
		}
		if seen[r.Number] {
			return fmt.Errorf("frequency table has duplicate number %d", r.Number)
		}
		seen[r.Number] = true
		if r.Count < 0 {
			return fmt.Errorf("frequency table number %d has negative count %d", r.Number, r.Count)
		}
	}

	return nil
}

// Clone returns an independent copy so cached tables can be handed out
// without sharing backing storage with callers.
func (t FrequencyTable) Clone() FrequencyTable {
	out := make(FrequencyTable, len(t))
	copy(out, t)
	return out
}

// SortByNumber orders the table by number ascending, in place.
func (t FrequencyTable) SortByNumber() {
	sort.Slice(t, func(i, j int) bool { return t[i].Number < t[j].Number })
}

// TopRecord returns the record with the highest count. Ties resolve to
// the lowest number.
func (t FrequencyTable) TopRecord() FrequencyRecord {
	if len(t) == 0 {
		return FrequencyRecord{}
	}
	top := t[0]
	for _, r := range t[1:] {
		if r.Count > top.Count || (r.Count == top.Count && r.Number < top.Number) {
			top = r
		}
	}
	return top
}

// DrawResult is one generated game: six distinct main numbers sorted
// ascending plus a bonus number drawn from the same depleted pool, so
// it is distinct from the mains by construction.
type DrawResult struct {
	MainNumbers []int `json:"main_numbers"`
	BonusNumber int   `json:"bonus_number"`
}

// DrawBatch is a set of independently generated games. Batches are
// created per request and never persisted.
type DrawBatch []DrawResult

// FetchSnapshot is an audit record of one statistics refresh. Only
// refreshes are logged; generated numbers are not.
type FetchSnapshot struct {
	ID          string       `json:"id"`
	Status      SourceStatus `json:"status"`
	RecordCount int          `json:"record_count"`
	TopNumber   int          `json:"top_number"`
	TopCount    int          `json:"top_count"`
	FetchedAt   time.Time    `json:"fetched_at"`
}
