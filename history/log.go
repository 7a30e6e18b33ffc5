package history

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunRecord captures one completed or failed agent execution. Records are
// immutable after Append.
type RunRecord struct {
	ID        string            `json:"id"`
	Component string            `json:"component"`
	Agent     string            `json:"agent"`
	Model     string            `json:"model"`
	TokensEst int               `json:"tokens_est"`
	OK        bool              `json:"ok"`
	Timestamp time.Time         `json:"ts"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// EstimateTokens returns max(1, ceil(len(text)/4)). This is a coarse
// heuristic for dashboarding only; it is not a billing-accurate count.
func EstimateTokens(text string) int {
	n := (len(text) + 3) / 4
	if n < 1 {
		return 1
	}
	return n
}

// Options configures a Log.
type Options struct {
	// Now overrides the timestamp source. Tests substitute a fixed clock.
	Now func() time.Time
}

// Log is an append-only run log owned by one session. It is safe for
// concurrent access within that session.
type Log struct {
	mu      sync.RWMutex
	records []RunRecord
	now     func() time.Time
}

// NewLog constructs an empty run log.
func NewLog(optFns ...func(o *Options)) *Log {
	opts := Options{Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Log{now: opts.Now}
}

// Append adds a record, assigning an ID and timestamp when unset.
func (l *Log) Append(rec RunRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now().UTC()
	}
	l.records = append(l.records, rec)
}

// All returns a defensive copy of the records in insertion order.
func (l *Log) All() []RunRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]RunRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Clear discards all records. Only an explicit user action calls this.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// WriteCSV exports the log as a flat table with ISO-8601 timestamps.
func (l *Log) WriteCSV(w io.Writer) error {
	records := l.All()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"component", "agent", "model", "tokens_est", "ok", "timestamp"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Component,
			rec.Agent,
			rec.Model,
			strconv.Itoa(rec.TokensEst),
			strconv.FormatBool(rec.OK),
			rec.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
