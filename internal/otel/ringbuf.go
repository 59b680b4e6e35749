package otel

import "sync"

// DefaultRingSize is the default ring buffer capacity.
const DefaultRingSize = 256

// RingBuffer keeps the most recent events. Goroutine-safe.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	head  int // next write position
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push adds an event, overwriting the oldest if full.
func (r *RingBuffer) Push(e Event) {
	r.mu.Lock()
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Last returns up to n of the newest events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	if n <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.count {
		n = r.count
	}
	out := make([]Event, n)
	size := len(r.buf)
	start := (r.head - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%size]
	}
	return out
}

// Latest returns the newest event, if any.
func (r *RingBuffer) Latest() (Event, bool) {
	last := r.Last(1)
	if len(last) == 0 {
		return Event{}, false
	}
	return last[0], true
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
