package tripstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a thread-safe in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	trips map[string]*Trip
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: make(map[string]*Trip)}
}

func (s *MemoryStore) Save(ctx context.Context, trip *Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips[trip.ID] = trip.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]*Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Trip
	for _, t := range s.trips {
		if t.UserID == userID {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) FindByHash(ctx context.Context, userID, contentHash string) (*Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.trips {
		if t.UserID == userID && t.ContentHash == contentHash {
			return t.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[id]; !ok {
		return ErrNotFound
	}
	delete(s.trips, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
