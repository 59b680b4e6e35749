// Package otel records typed briefing events as JSONL.
//
// The Logger writes asynchronously through a buffered channel drained by a
// single goroutine. An optional RingBuffer keeps the most recent events in
// memory so the TUI can show the last thing that happened.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Gateway events
	KindGatewayStart    EventKind = "gateway.start"
	KindGatewayComplete EventKind = "gateway.complete"
	KindGatewayError    EventKind = "gateway.error"

	// Saved briefings
	KindSavedLoad   EventKind = "saved.load"
	KindSavedAdd    EventKind = "saved.add"
	KindSavedRemove EventKind = "saved.remove"
	KindSavedError  EventKind = "saved.error"

	// UI events
	KindTransition EventKind = "ui.transition"
	KindStale      EventKind = "ui.stale_result"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
)

// Event is a single JSONL record. Every field except Kind and Time is optional.
type Event struct {
	Time      time.Time     `json:"t"`
	Level     Level         `json:"level,omitempty"`
	Kind      EventKind     `json:"kind"`
	Comp      string        `json:"comp,omitempty"` // "gateway", "saved", "ui", "main"
	SessionID string        `json:"session_id,omitempty"`
	Topic     string        `json:"topic,omitempty"`
	Gen       int           `json:"gen,omitempty"` // fetch generation
	Dur       time.Duration `json:"-"`
	DurMs     float64       `json:"dur_ms,omitempty"`
	Count     int           `json:"count,omitempty"`
	From      string        `json:"from,omitempty"`
	To        string        `json:"to,omitempty"`
	Err       string        `json:"err,omitempty"`
	Msg       string        `json:"msg,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
