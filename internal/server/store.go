package server

import (
	"bytes"
	"errors"
	"sync"

	"bptree"
)

// Store guards a tree shared by every connection. Readers hold the read lock
// for the length of a lookup or scan, writers hold the write lock.
type Store struct {
	mu   sync.RWMutex
	tree *bptree.Tree[string, []byte]
}

// NewStore creates an empty store backed by a tree of the given order.
func NewStore(order int, logger bptree.Logger) (*Store, error) {
	tree, err := bptree.New[string, []byte](order, bptree.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Store{tree: tree}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Get(key)
}

func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Has(key)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Set stores a copy of value, replacing any existing value.
func (s *Store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Upsert(key, bytes.Clone(value))
}

// SetNX stores a copy of value only if key is absent. It reports whether the
// value was stored.
func (s *Store) SetNX(key string, value []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !errors.Is(s.tree.Insert(key, bytes.Clone(value)), bptree.ErrKeyExists)
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Delete(key) == nil
}

// Scan calls fn for each pair in key order within the inclusive bounds until
// fn returns false. The read lock is held throughout, fn must not call back
// into the store.
func (s *Store) Scan(fn func(key string, value []byte) bool, opts ...bptree.ScanOption[string]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.tree.Scan(opts...) {
		if !fn(k, v) {
			return
		}
	}
}

// Verify checks the invariants of the underlying tree.
func (s *Store) Verify() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Verify()
}
