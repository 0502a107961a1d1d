// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/papyr/internal/client/api"
	"github.com/taibuivan/papyr/internal/client/feed"
	"github.com/taibuivan/papyr/internal/client/history"
)

// fakeLister serves canned pages and can hold individual requests open to
// simulate slow responses.
type fakeLister struct {
	mu       sync.Mutex
	requests []api.ListPostsParams
	total    int
	gates    map[string]chan struct{} // optional per-search-term gate
}

func newFakeLister(total int) *fakeLister {
	return &fakeLister{total: total, gates: make(map[string]chan struct{})}
}

func (fake *fakeLister) gate(term string) chan struct{} {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	gate := make(chan struct{})
	fake.gates[term] = gate
	return gate
}

func (fake *fakeLister) calls() []api.ListPostsParams {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	calls := make([]api.ListPostsParams, len(fake.requests))
	copy(calls, fake.requests)
	return calls
}

func (fake *fakeLister) ListPosts(_ context.Context, params api.ListPostsParams) (*api.PostPage, error) {
	fake.mu.Lock()
	fake.requests = append(fake.requests, params)
	gate := fake.gates[params.Search]
	fake.mu.Unlock()

	if gate != nil {
		<-gate
	}

	start := (params.Page - 1) * params.Limit
	var posts []api.Post
	for i := 0; i < params.Limit && start+i < fake.total; i++ {
		posts = append(posts, api.Post{
			ID:    fmt.Sprintf("%s-post-%d", params.Search, start+i),
			Title: fmt.Sprintf("Post %d for %q", start+i, params.Search),
		})
	}

	totalPages := (fake.total + params.Limit - 1) / params.Limit
	return &api.PostPage{
		Posts: posts,
		Metadata: api.Metadata{
			Total:      fake.total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: totalPages,
		},
	}, nil
}

func newController(lister *fakeLister) *feed.Controller {
	return feed.NewController(lister, history.NewMemoryStore(),
		feed.WithDebounce(5*time.Millisecond),
		feed.WithPageSize(10),
	)
}

func TestController_Load(t *testing.T) {
	lister := newFakeLister(25)
	controller := newController(lister)

	controller.Load(context.Background())

	snapshot := controller.Snapshot()
	assert.Len(t, snapshot.Posts, 10)
	assert.Equal(t, 25, snapshot.Total)
	assert.Equal(t, 1, snapshot.Page)
	assert.True(t, snapshot.HasMore)
	assert.False(t, snapshot.Loading)
	assert.NoError(t, snapshot.Err)
}

func TestController_LoadMoreAppends(t *testing.T) {
	lister := newFakeLister(25)
	controller := newController(lister)

	controller.Load(context.Background())
	controller.LoadMore(context.Background())
	controller.LoadMore(context.Background())

	snapshot := controller.Snapshot()
	assert.Len(t, snapshot.Posts, 25)
	assert.Equal(t, 3, snapshot.Page)
	assert.False(t, snapshot.HasMore)

	// Past the last page, LoadMore is a no-op: no fourth request.
	controller.LoadMore(context.Background())
	assert.Len(t, lister.calls(), 3)
}

// Rapid keystrokes coalesce into a single request for the final term.
func TestController_DebouncedSearch(t *testing.T) {
	lister := newFakeLister(5)
	controller := newController(lister)

	ctx := context.Background()
	controller.SetSearch(ctx, "g")
	controller.SetSearch(ctx, "go")
	controller.SetSearch(ctx, "golang")

	require.Eventually(t, func() bool {
		return len(lister.calls()) == 1
	}, time.Second, 2*time.Millisecond)

	// Give any spurious extra request a moment to show up.
	time.Sleep(20 * time.Millisecond)
	calls := lister.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "golang", calls[0].Search)

	// Only the committed term entered the history.
	terms, err := controller.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, terms)
}

func TestController_EmptyResultsNotRecorded(t *testing.T) {
	lister := newFakeLister(0)
	controller := newController(lister)

	ctx := context.Background()
	controller.SearchNow(ctx, "no-such-topic")

	terms, err := controller.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

// A slow response for a superseded search must not overwrite newer results.
func TestController_DiscardsStaleResponses(t *testing.T) {
	lister := newFakeLister(5)
	controller := newController(lister)

	ctx := context.Background()
	gate := lister.gate("gol")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		controller.SearchNow(ctx, "gol") // blocks on the gate
	}()

	// Wait until the slow request is actually in flight.
	require.Eventually(t, func() bool {
		return len(lister.calls()) == 1
	}, time.Second, time.Millisecond)

	// A newer search completes while the old one hangs.
	controller.SearchNow(ctx, "golang")
	snapshot := controller.Snapshot()
	require.NotEmpty(t, snapshot.Posts)
	assert.Contains(t, snapshot.Posts[0].ID, "golang-")

	// Release the stale response; it must be dropped.
	close(gate)
	wg.Wait()

	snapshot = controller.Snapshot()
	assert.Contains(t, snapshot.Posts[0].ID, "golang-")
	assert.Equal(t, "golang", snapshot.Search)
	assert.False(t, snapshot.Loading)
}

func TestController_LoadingFlag(t *testing.T) {
	lister := newFakeLister(5)
	controller := newController(lister)

	gate := lister.gate("pending")

	var loadingSeen bool
	controller.Subscribe(func(snapshot feed.Snapshot) {
		if snapshot.Loading {
			loadingSeen = true
		}
	})

	done := make(chan struct{})
	go func() {
		controller.SearchNow(context.Background(), "pending")
		close(done)
	}()

	require.Eventually(t, func() bool {
		return controller.Snapshot().Loading
	}, time.Second, time.Millisecond)

	close(gate)
	<-done

	assert.True(t, loadingSeen)
	assert.False(t, controller.Snapshot().Loading)
}
