// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feed drives the post listing screen: paginated loading, debounced
search, and infinite scroll.

# Stale Responses

Every request carries a sequence number taken when it is issued. A response
is applied only if its sequence still matches the controller's latest; any
request issued afterwards makes it stale and it is dropped, so a slow page
for "gol" can never overwrite the results for "golang".
*/
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/papyr/internal/client/api"
	"github.com/taibuivan/papyr/internal/client/history"
)

// DefaultDebounce is how long the controller waits after the last keystroke
// before the search actually runs.
const DefaultDebounce = 500 * time.Millisecond

// DefaultPageSize is the page size requested from the listing endpoint.
const DefaultPageSize = 10

// Lister is the slice of the API client the controller needs.
type Lister interface {
	ListPosts(context context.Context, params api.ListPostsParams) (*api.PostPage, error)
}

// Snapshot is an immutable view of the feed for rendering.
type Snapshot struct {
	Posts   []api.Post
	Search  string
	Page    int
	Total   int
	HasMore bool
	Loading bool
	Err     error
}

// Controller owns the feed state. Safe for concurrent use.
type Controller struct {
	client   Lister
	history  history.Store
	debounce time.Duration
	pageSize int

	mu          sync.Mutex
	timer       *time.Timer
	sequence    uint64
	posts       []api.Post
	search      string
	page        int
	totalPages  int
	total       int
	loading     bool
	lastErr     error
	subscribers []func(Snapshot)
}

// Option customizes a [Controller].
type Option func(*Controller)

// WithDebounce overrides the search debounce interval (tests use ~0).
func WithDebounce(d time.Duration) Option {
	return func(controller *Controller) { controller.debounce = d }
}

// WithPageSize overrides the requested page size.
func WithPageSize(n int) Option {
	return func(controller *Controller) { controller.pageSize = n }
}

// NewController constructs a feed controller. historyStore may be a
// [history.MemoryStore] when persistence is not wanted.
func NewController(client Lister, historyStore history.Store, options ...Option) *Controller {
	controller := &Controller{
		client:   client,
		history:  historyStore,
		debounce: DefaultDebounce,
		pageSize: DefaultPageSize,
	}
	for _, option := range options {
		option(controller)
	}
	return controller
}

// Load fetches the first page for the current search term. It resets
// pagination and replaces the post list.
func (controller *Controller) Load(context context.Context) {
	controller.mu.Lock()
	search := controller.search
	controller.mu.Unlock()

	controller.fetch(context, search, 1, false)
}

// SetSearch updates the search term from a keystroke. The fetch is debounced:
// only after the term has been stable for the debounce interval does a
// request go out. Committed terms that return results enter the search history.
func (controller *Controller) SetSearch(context context.Context, term string) {
	controller.mu.Lock()
	controller.search = term
	if controller.timer != nil {
		controller.timer.Stop()
	}
	controller.timer = time.AfterFunc(controller.debounce, func() {
		controller.commitSearch(context, term)
	})
	controller.mu.Unlock()
}

// SearchNow bypasses the debounce (enter key, picking a history entry).
func (controller *Controller) SearchNow(context context.Context, term string) {
	controller.mu.Lock()
	controller.search = term
	if controller.timer != nil {
		controller.timer.Stop()
		controller.timer = nil
	}
	controller.mu.Unlock()

	controller.commitSearch(context, term)
}

func (controller *Controller) commitSearch(context context.Context, term string) {
	controller.fetch(context, term, 1, false)
}

// LoadMore fetches the next page and appends it (infinite scroll). It is a
// no-op while a request is in flight or when the last page is already shown.
func (controller *Controller) LoadMore(context context.Context) {
	controller.mu.Lock()
	if controller.loading || controller.page >= controller.totalPages {
		controller.mu.Unlock()
		return
	}
	search := controller.search
	nextPage := controller.page + 1
	controller.mu.Unlock()

	controller.fetch(context, search, nextPage, true)
}

// fetch issues one listing request under a fresh sequence number and applies
// the response only if it is still the latest.
func (controller *Controller) fetch(context context.Context, search string, page int, append bool) {
	controller.mu.Lock()
	controller.sequence++
	sequence := controller.sequence
	controller.loading = true
	controller.lastErr = nil
	controller.mu.Unlock()
	controller.notify()

	result, err := controller.client.ListPosts(context, api.ListPostsParams{
		Page:   page,
		Limit:  controller.pageSize,
		Search: search,
	})

	controller.mu.Lock()
	if sequence != controller.sequence {
		// A newer request took over; this response is stale.
		controller.mu.Unlock()
		return
	}

	controller.loading = false
	if err != nil {
		controller.lastErr = err
		controller.mu.Unlock()
		controller.notify()
		return
	}

	if append {
		controller.posts = concat(controller.posts, result.Posts)
	} else {
		controller.posts = result.Posts
	}
	controller.page = result.Metadata.Page
	controller.total = result.Metadata.Total
	controller.totalPages = result.Metadata.TotalPages
	controller.mu.Unlock()

	// Only committed searches that produced results enter the history;
	// neither intermediate keystrokes nor empty result sets are worth
	// offering back to the user.
	if !append && search != "" && len(result.Posts) > 0 {
		_ = controller.history.Record(context, search)
	}

	controller.notify()
}

// Snapshot returns the current feed state for rendering.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

func (controller *Controller) snapshotLocked() Snapshot {
	posts := make([]api.Post, len(controller.posts))
	copy(posts, controller.posts)

	return Snapshot{
		Posts:   posts,
		Search:  controller.search,
		Page:    controller.page,
		Total:   controller.total,
		HasMore: controller.page < controller.totalPages,
		Loading: controller.loading,
		Err:     controller.lastErr,
	}
}

// History returns the recent search terms, most recent first.
func (controller *Controller) History(context context.Context) ([]string, error) {
	return controller.history.List(context)
}

// Subscribe registers a callback fired after every state change.
func (controller *Controller) Subscribe(callback func(Snapshot)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.subscribers = append(controller.subscribers, callback)
}

func (controller *Controller) notify() {
	controller.mu.Lock()
	snapshot := controller.snapshotLocked()
	subscribers := make([]func(Snapshot), len(controller.subscribers))
	copy(subscribers, controller.subscribers)
	controller.mu.Unlock()

	for _, callback := range subscribers {
		callback(snapshot)
	}
}

func concat(a, b []api.Post) []api.Post {
	result := make([]api.Post, 0, len(a)+len(b))
	result = append(result, a...)
	result = append(result, b...)
	return result
}
