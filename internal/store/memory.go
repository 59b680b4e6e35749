package store

import "sync"

// Memory is an in-process BlobStore. Nothing survives the process.
type Memory struct {
	mu    sync.Mutex
	blobs map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.blobs[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}
