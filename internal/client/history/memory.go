// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"context"
	"sync"
)

// MemoryStore is a volatile [Store] for tests and ephemeral sessions.
type MemoryStore struct {
	mu    sync.Mutex
	terms []string // most recent first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (store *MemoryStore) Record(_ context.Context, term string) error {
	if term == "" {
		return nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	// Promote an existing entry instead of duplicating it.
	for i, existing := range store.terms {
		if existing == term {
			store.terms = append(store.terms[:i], store.terms[i+1:]...)
			break
		}
	}

	store.terms = append([]string{term}, store.terms...)
	if len(store.terms) > MaxEntries {
		store.terms = store.terms[:MaxEntries]
	}
	return nil
}

func (store *MemoryStore) List(_ context.Context) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	terms := make([]string, len(store.terms))
	copy(terms, store.terms)
	return terms, nil
}

func (store *MemoryStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.terms = nil
	return nil
}
