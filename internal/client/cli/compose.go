// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/taibuivan/papyr/internal/client/api"
)

func (application *App) newPost(ctx context.Context) {
	if !application.requireAuth(ctx) {
		return
	}

	title, err := promptLine(application.reader, "Title", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	content, err := promptMultiline(application.reader, "Content", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	tags, err := promptLine(application.reader, "Tags (comma separated, optional)", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	publish, err := promptLine(application.reader, "Publish now? [y/N]", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}

	input := api.PostInput{
		Title:     title,
		Content:   content,
		Published: strings.EqualFold(publish, "y"),
	}
	if tags != "" {
		input.Tags = &tags
	}

	post, err := application.client.CreatePost(ctx, input)
	if err != nil {
		application.reportError("Could not create post", err)
		return
	}
	fmt.Printf("Created %q (%s).\n", post.Title, post.ID)
}

// editPost applies a partial update: empty answers leave fields unchanged.
func (application *App) editPost(ctx context.Context, arguments []string) {
	if !application.requireAuth(ctx) {
		return
	}
	if len(arguments) != 1 {
		fmt.Println("Usage: edit <id>")
		return
	}

	post, err := application.client.GetPost(ctx, arguments[0])
	if err != nil {
		application.reportError("Could not load post", err)
		return
	}

	update := map[string]any{}

	title, err := promptLine(application.reader, fmt.Sprintf("Title [%s]", post.Title), os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	if title != "" {
		update["title"] = title
	}

	content, err := promptMultiline(application.reader, "New content (leave empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	if content != "" {
		update["content"] = content
	}

	current := "none"
	if post.Tags != nil {
		current = *post.Tags
	}
	tags, err := promptLine(application.reader,
		fmt.Sprintf("Tags [%s] ('-' to clear)", current), os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	switch tags {
	case "":
	case "-":
		update["tags"] = nil
	default:
		update["tags"] = tags
	}

	publish, err := promptLine(application.reader,
		fmt.Sprintf("Published? [%t] (y/n)", post.Published), os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	switch strings.ToLower(publish) {
	case "y":
		update["published"] = true
	case "n":
		update["published"] = false
	}

	if len(update) == 0 {
		fmt.Println("Nothing to change.")
		return
	}

	updated, err := application.client.UpdatePost(ctx, post.ID, update)
	if err != nil {
		application.reportError("Could not update post", err)
		return
	}
	fmt.Printf("Updated %q.\n", updated.Title)
}

func (application *App) deletePost(ctx context.Context, arguments []string) {
	if !application.requireAuth(ctx) {
		return
	}
	if len(arguments) != 1 {
		fmt.Println("Usage: delete <id>")
		return
	}

	confirm, err := promptLine(application.reader, "Type the post id again to confirm", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	if confirm != arguments[0] {
		fmt.Println("Aborted.")
		return
	}

	if err := application.client.DeletePost(ctx, arguments[0]); err != nil {
		application.reportError("Could not delete post", err)
		return
	}
	fmt.Println("Post deleted.")
}
