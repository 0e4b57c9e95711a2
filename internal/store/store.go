// internal/store/store.go
//
// The in-memory feature collection for one session. The store is the only
// owner of live Feature values; everything it hands out is a clone. There
// is exactly one writer (the engine), invoked serially from the event loop,
// so no locking is needed here.

package store

import (
	"github.com/google/uuid"

	"github.com/kingrea/proflow/internal/track"
)

// Subscriber is notified with a snapshot after a record is created or
// replaced. Used by views that hold a feature open while it changes
// underneath them.
type Subscriber func(track.Feature)

// Store holds the board's features, newest-created first.
type Store struct {
	features    []*track.Feature
	subscribers []Subscriber
	newID       func() string
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithIDFunc overrides id generation, mainly for tests that need
// predictable ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New builds an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create assigns a fresh id to the draft, inserts it at the front of the
// collection and returns a snapshot of the finalized record. The draft is
// not retained.
func (s *Store) Create(draft *track.Feature) track.Feature {
	record := draft.Clone()
	record.ID = s.newID()
	s.features = append([]*track.Feature{record}, s.features...)
	snapshot := *record.Clone()
	s.notify(snapshot)
	return snapshot
}

// Get returns a snapshot of the feature with the given id.
func (s *Store) Get(id string) (track.Feature, bool) {
	for _, f := range s.features {
		if f.ID == id {
			return *f.Clone(), true
		}
	}
	return track.Feature{}, false
}

// ApplyUpdate replaces the stored record for the id, keeping its position.
// An unknown id is dropped silently: in a single-user session a stale id
// means the update itself is stale.
func (s *Store) ApplyUpdate(id string, updated track.Feature) {
	for i, f := range s.features {
		if f.ID != id {
			continue
		}
		record := updated.Clone()
		record.ID = id
		s.features[i] = record
		s.notify(*record.Clone())
		return
	}
}

// All returns snapshots of every record in display order.
func (s *Store) All() []track.Feature {
	out := make([]track.Feature, 0, len(s.features))
	for _, f := range s.features {
		out = append(out, *f.Clone())
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.features)
}

// Subscribe registers a callback for create/update notifications.
func (s *Store) Subscribe(fn Subscriber) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

func (s *Store) notify(snapshot track.Feature) {
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
}
