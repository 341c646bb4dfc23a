// Package trace records the filter decisions made during a scan.
//
// Every accept/reject decision produces one Record naming the component that
// made it and a human-readable explanation. Records accumulate in a Log that
// is safe for concurrent appenders and can optionally be forwarded to a Sink
// (e.g. a console logger at trace level) as they are produced.
package trace

import (
	"fmt"
	"sync"
)

// Record is one diagnostic entry explaining a single filter decision.
type Record struct {
	// Component identifies the decision source (e.g. "file", "dir", "scan")
	Component string
	// Message is a human-readable description of the decision
	Message string
}

// String returns the record formatted as "[component] message".
func (r Record) String() string {
	return fmt.Sprintf("[%s] %s", r.Component, r.Message)
}

// Sink receives decision records as they are produced. Delivery is
// synchronous from scan goroutines, so implementations must not block.
type Sink interface {
	Trace(component, message string)
}

// Log is an append-only collection of decision records.
// All methods are safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	records []Record
	sink    Sink
}

// NewLog creates an empty Log. sink may be nil, in which case records are
// only accumulated and never forwarded.
func NewLog(sink Sink) *Log {
	return &Log{sink: sink}
}

// Append records a decision and forwards it to the sink if one is configured.
func (l *Log) Append(component, message string) {
	l.mu.Lock()
	l.records = append(l.records, Record{Component: component, Message: message})
	l.mu.Unlock()

	// Forward outside the lock; the sink serializes its own writes.
	if l.sink != nil {
		l.sink.Trace(component, message)
	}
}

// Appendf records a decision built from a format string.
func (l *Log) Appendf(component, format string, args ...interface{}) {
	l.Append(component, fmt.Sprintf(format, args...))
}

// Records returns a copy of all records appended so far.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records appended so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Reset discards all accumulated records. The sink is retained.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
}
