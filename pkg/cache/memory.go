package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiration
}

// MemoryStore is a thread-safe in-process Store.
// When it reaches its capacity, the least recently used entry is evicted.
type MemoryStore struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
	now      func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a store holding at most capacity entries.
// The capacity must be positive, otherwise it panics.
func NewMemoryStore(capacity int, opts ...MemoryOption) *MemoryStore {
	if capacity <= 0 {
		panic("cache: memory store capacity must be positive")
	}
	s := &MemoryStore{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the value and marks it as recently used.
// Expired entries are removed lazily on access.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.removeElement(elem)
		return nil, ErrCacheMiss
	}

	s.eviction.MoveToFront(elem)
	return append([]byte(nil), entry.value...), nil
}

// Set adds or replaces a value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	value = append([]byte(nil), value...)

	if elem, ok := s.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		s.eviction.MoveToFront(elem)
		return nil
	}

	s.items[key] = s.eviction.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	if s.eviction.Len() > s.capacity {
		s.removeElement(s.eviction.Back())
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.removeElement(elem)
	}
	return nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eviction.Len()
}

// Must be called with lock held.
func (s *MemoryStore) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	s.eviction.Remove(elem)
	delete(s.items, elem.Value.(*memoryEntry).key)
}
