// Package saved keeps the user's saved briefings: an insertion-ordered,
// newest-first list written through to a BlobStore as one JSON array on
// every change.
package saved

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/abelbrown/briefing/internal/otel"
	"github.com/abelbrown/briefing/internal/store"
	"github.com/google/uuid"
)

// DefaultKey is the blob name holding the saved list.
const DefaultKey = "daily_news_saved"

// Store is the saved briefings list. Memory and blob are equal after every
// successful call. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	blobs    store.BlobStore
	key      string
	now      func() time.Time
	newID    func() string
	events   *otel.Logger
	articles []model.SavedArticle
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for ids, dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc replaces the id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithKey stores the list under a different blob name.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithEvents records saved.* events on l.
func WithEvents(l *otel.Logger) Option {
	return func(s *Store) { s.events = l }
}

// New creates a Store over blobs. Call Load before use.
func New(blobs store.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		key:   DefaultKey,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		s.newID = s.timeOrderedID
	}
	return s
}

// timeOrderedID returns a UUIDv7, which sorts by creation time.
func (s *Store) timeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return strconv.FormatInt(s.now().UnixNano(), 10)
	}
	return id.String()
}

// Load reads the persisted list, replacing what is in memory. A missing
// blob, a read failure or unparseable JSON all yield an empty list.
func (s *Store) Load() []model.SavedArticle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = nil

	raw, ok, err := s.blobs.Get(s.key)
	if err != nil {
		logging.Warn("Failed to read saved articles", "key", s.key, "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var articles []model.SavedArticle
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		logging.Warn("Failed to parse saved articles", "key", s.key, "error", err)
		s.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindSavedError, Comp: "saved", Err: err.Error()})
		return nil
	}

	s.articles = articles
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedLoad, Comp: "saved", Count: len(articles)})
	return s.snapshot()
}

// Add saves result under topic at the front of the list. It returns false
// without touching anything when an entry with the same summary and topic
// already exists.
func (s *Store) Add(result model.NewsResult, topic string) (model.SavedArticle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.articles {
		if a.Summary == result.Summary && a.Topic == topic {
			return a, false, nil
		}
	}

	now := s.now()
	sources := make([]model.Source, len(result.Sources))
	copy(sources, result.Sources)
	article := model.SavedArticle{
		NewsResult: model.NewsResult{
			Summary:   result.Summary,
			Sources:   sources,
			Timestamp: model.FormatClock(now),
		},
		ID:    s.newID(),
		Topic: topic,
		Date:  model.FormatDate(now),
	}

	prev := s.articles
	s.articles = append([]model.SavedArticle{article}, prev...)
	if err := s.persist(); err != nil {
		s.articles = prev
		return model.SavedArticle{}, false, err
	}

	logging.Info("briefing saved", "id", article.ID, "topic", topic)
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedAdd, Comp: "saved", Topic: topic, Count: len(s.articles)})
	return article, true, nil
}

// Remove deletes the entry with id. Absent ids are a no-op.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.articles {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	prev := s.articles
	next := make([]model.SavedArticle, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)
	s.articles = next

	if err := s.persist(); err != nil {
		s.articles = prev
		return false, err
	}

	logging.Info("briefing removed", "id", id)
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedRemove, Comp: "saved", Count: len(s.articles)})
	return true, nil
}

// List returns a copy of the saved briefings, newest first.
func (s *Store) List() []model.SavedArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of saved briefings.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.articles)
}

// Get returns the saved briefing with id.
func (s *Store) Get(id string) (model.SavedArticle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.ID == id {
			return a, true
		}
	}
	return model.SavedArticle{}, false
}

// ContainsSummary reports whether any saved briefing has this summary,
// regardless of topic.
func (s *Store) ContainsSummary(summary string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ContainsSummary(s.articles, summary)
}

// ContainsSummary reports whether any article in list has this summary.
func ContainsSummary(list []model.SavedArticle, summary string) bool {
	for _, a := range list {
		if a.Summary == summary {
			return true
		}
	}
	return false
}

// persist overwrites the blob with the full list. Caller holds s.mu.
func (s *Store) persist() error {
	list := s.articles
	if list == nil {
		list = []model.SavedArticle{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode saved articles: %w", err)
	}
	if err := s.blobs.Set(s.key, string(data)); err != nil {
		s.events.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindSavedError, Comp: "saved", Err: err.Error()})
		return fmt.Errorf("persist saved articles: %w", err)
	}
	return nil
}

func (s *Store) snapshot() []model.SavedArticle {
	out := make([]model.SavedArticle, len(s.articles))
	copy(out, s.articles)
	return out
}
