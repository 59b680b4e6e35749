package otel

// The drain goroutine is the only reader of l.ch and the only writer to l.w.
// Logger.mu guards just the ring pointer.

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const queueSize = 1024

type entry struct {
	data []byte
	ev   Event
}

// Logger serializes events as JSONL through an async writer. Goroutine-safe.
// A nil *Logger is valid and discards everything.
type Logger struct {
	mu        sync.Mutex
	ring      *RingBuffer
	sessionID string
	ch        chan entry
	w         io.Writer
	closer    io.Closer
	dropped   atomic.Uint64
	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewLogger creates a Logger writing JSONL to w. Call Close to flush.
func NewLogger(w io.Writer) *Logger {
	var sid [8]byte
	_, _ = rand.Read(sid[:])

	l := &Logger{
		sessionID: fmt.Sprintf("%x", sid[:]),
		ch:        make(chan entry, queueSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// OpenFile appends events to path, creating parent directories as needed.
func OpenFile(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create event log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	l := NewLogger(f)
	l.closer = f
	return l, nil
}

// NewNullLogger creates a Logger that discards output.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

func (l *Logger) drain() {
	defer close(l.done)
	for e := range l.ch {
		if _, err := l.w.Write(e.data); err != nil {
			l.dropped.Add(1)
		}

		l.mu.Lock()
		ring := l.ring
		l.mu.Unlock()

		if ring != nil {
			ring.Push(e.ev)
		}
	}
}

// Emit queues an event. Sets Time (if zero) and SessionID. Never blocks:
// when the queue is full or the logger is closed the event is dropped.
func (l *Logger) Emit(e Event) {
	if l == nil {
		return
	}
	defer func() {
		// Close may race between the closed check and the send.
		if recover() != nil {
			l.dropped.Add(1)
		}
	}()

	if l.closed.Load() {
		l.dropped.Add(1)
		return
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	data, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}
	data = append(data, '\n')

	select {
	case l.ch <- entry{data: data, ev: e}:
	default:
		l.dropped.Add(1)
	}
}

// Info emits an info-level event.
func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error-level event. A nil err is logged as an empty string.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	l.Emit(Event{Level: LevelError, Kind: kind, Comp: comp, Err: errStr})
}

// SetRingBuffer attaches a ring buffer for live inspection.
func (l *Logger) SetRingBuffer(r *RingBuffer) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ring = r
}

// Dropped returns the number of events dropped since creation.
func (l *Logger) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close flushes pending events, stops the drain goroutine and closes the
// underlying file if the logger owns one.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.ch)
		<-l.done

		if l.closer != nil {
			l.closer.Close()
		}
		if d := l.dropped.Load(); d > 0 {
			fmt.Fprintf(os.Stderr, "briefing: %d events dropped during session %s\n", d, l.sessionID)
		}
	})
}
