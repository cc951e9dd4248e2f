package session

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"lecturenotes/internal/domain"
)

// MemoryStore is an LRU of sessions with an idle TTL. A non-positive
// maxEntries disables the size limit and a non-positive ttl disables expiry.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}

	entry, ok := elem.Value.(*domain.Session)
	if !ok {
		return nil, ErrNotFound
	}

	if s.expired(entry, s.now()) {
		s.removeElement(elem)

		return nil, ErrNotFound
	}

	s.order.MoveToFront(elem)

	sess := *entry
	return &sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" {
		return errors.New("session ID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess.UpdatedAt = now
	stored := *sess

	if elem, ok := s.entries[sess.ID]; ok {
		elem.Value = &stored
		s.order.MoveToFront(elem)

		return nil
	}

	s.entries[sess.ID] = s.order.PushFront(&stored)

	s.evictExpiredLocked(now)
	s.enforceSizeLimitLocked()

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[id]; ok {
		s.removeElement(elem)
	}

	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()

		entry, ok := elem.Value.(*domain.Session)
		if ok && entry.UpdatedAt.Before(before) {
			s.removeElement(elem)
			deleted++
		}
		elem = prev
	}

	return deleted, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *MemoryStore) expired(sess *domain.Session, now time.Time) bool {
	return s.ttl > 0 && now.After(sess.UpdatedAt.Add(s.ttl))
}

func (s *MemoryStore) evictExpiredLocked(now time.Time) {
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()

		entry, ok := elem.Value.(*domain.Session)
		if ok && s.expired(entry, now) {
			s.removeElement(elem)
		}
		elem = prev
	}
}

func (s *MemoryStore) enforceSizeLimitLocked() {
	if s.maxEntries <= 0 {
		return
	}

	for len(s.entries) > s.maxEntries {
		elem := s.order.Back()
		if elem == nil {
			return
		}
		s.removeElement(elem)
	}
}

func (s *MemoryStore) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*domain.Session)
	if !ok {
		s.order.Remove(elem)
		return
	}

	delete(s.entries, entry.ID)
	s.order.Remove(elem)
}
