// Package memstore is a process-local KV, used by tests and throwaway sessions.
package memstore

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("memstore: closed")

type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool

	// FailGet / FailSet, while non-nil, are returned by every Get / Set.
	FailGet error
	FailSet error
	Sets    int
}

func New() *Store { return &Store{data: map[string]string{}} }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	if s.FailGet != nil {
		return "", false, s.FailGet
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.FailSet != nil {
		return s.FailSet
	}
	s.data[key] = value
	s.Sets++
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Snapshot copies the current contents.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}
