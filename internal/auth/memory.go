package auth

import (
	"context"
	"sync"
)

// InMemoryStore implements UserStore with in-process concurrency safety.
// It backs the server when no postgres DSN is configured and the tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string // email -> id
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrAlreadyExists
	}
	if _, ok := s.users[u.ID]; ok {
		return ErrAlreadyExists
	}
	cp := *u
	s.users[u.ID] = &cp
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *InMemoryStore) Find(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	out := *u
	return &out, nil
}

func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (s *InMemoryStore) Save(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	if u.Email != existing.Email {
		if other, taken := s.byEmail[u.Email]; taken && other != u.ID {
			return ErrAlreadyExists
		}
		delete(s.byEmail, existing.Email)
		s.byEmail[u.Email] = u.ID
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}
