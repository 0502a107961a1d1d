// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"strings"
)

func (application *App) renderFeed() {
	snapshot := application.feed.Snapshot()
	if snapshot.Err != nil {
		fmt.Printf("Could not load posts: %v\n", snapshot.Err)
		return
	}

	if len(snapshot.Posts) == 0 {
		if snapshot.Search != "" {
			fmt.Printf("No posts match %q.\n", snapshot.Search)
		} else {
			fmt.Println("No posts yet.")
		}
		return
	}

	for _, post := range snapshot.Posts {
		marker := " "
		if !post.Published {
			marker = "d" // draft
		}
		tags := ""
		if post.Tags != nil {
			tags = "  [" + *post.Tags + "]"
		}
		fmt.Printf("%s %s  %s  %s%s\n",
			marker, post.CreatedAt.Format("2006-01-02"), post.ID, post.Title, tags)
	}

	fmt.Printf("Showing %d of %d posts.", len(snapshot.Posts), snapshot.Total)
	if snapshot.HasMore {
		fmt.Print(" Type 'more' for the next page.")
	}
	fmt.Println()
}

func (application *App) list(ctx context.Context) {
	if !application.requireAuth(ctx) {
		return
	}
	application.feed.SearchNow(ctx, "")
	application.renderFeed()
}

func (application *App) search(ctx context.Context, arguments []string) {
	if !application.requireAuth(ctx) {
		return
	}
	term := strings.Join(arguments, " ")
	if term == "" {
		fmt.Println("Usage: search <term>")
		return
	}
	application.feed.SearchNow(ctx, term)
	application.renderFeed()
}

func (application *App) more(ctx context.Context) {
	if !application.requireAuth(ctx) {
		return
	}
	before := len(application.feed.Snapshot().Posts)
	application.feed.LoadMore(ctx)
	snapshot := application.feed.Snapshot()
	if snapshot.Err == nil && len(snapshot.Posts) == before && !snapshot.HasMore {
		fmt.Println("No more posts.")
		return
	}
	application.renderFeed()
}

func (application *App) read(ctx context.Context, arguments []string) {
	if !application.requireAuth(ctx) {
		return
	}
	if len(arguments) != 1 {
		fmt.Println("Usage: read <id>")
		return
	}

	post, err := application.client.GetPost(ctx, arguments[0])
	if err != nil {
		application.reportError("Could not load post", err)
		return
	}

	fmt.Printf("\n%s\n", post.Title)
	fmt.Printf("%s | %s", post.Slug, post.CreatedAt.Format("2006-01-02 15:04"))
	if post.Tags != nil {
		fmt.Printf(" | %s", *post.Tags)
	}
	if !post.Published {
		fmt.Print(" | draft")
	}
	fmt.Printf("\n\n%s\n\n", post.Content)
}

func (application *App) searchHistory(ctx context.Context) {
	terms, err := application.feed.History(ctx)
	if err != nil {
		fmt.Printf("Could not load history: %v\n", err)
		return
	}
	if len(terms) == 0 {
		fmt.Println("No recent searches.")
		return
	}
	for index, term := range terms {
		fmt.Printf("%d. %s\n", index+1, term)
	}
}

func (application *App) clearHistory(ctx context.Context) {
	if err := application.history.Clear(ctx); err != nil {
		fmt.Printf("Could not clear history: %v\n", err)
		return
	}
	fmt.Println("Search history cleared.")
}
