// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package history persists the user's recent search terms across sessions.

The store keeps a most-recently-used list capped at [MaxEntries]: re-running
an old search promotes it to the front instead of duplicating it.
*/
package history

import "context"

// MaxEntries caps the search history length.
const MaxEntries = 5

// Store is the persistence contract for search history.
type Store interface {
	// Record notes that a search ran. Existing terms are promoted to the
	// front; the list is trimmed to MaxEntries.
	Record(context context.Context, term string) error

	// List returns the stored terms, most recent first.
	List(context context.Context) ([]string, error)

	// Clear removes all stored terms.
	Clear(context context.Context) error
}
