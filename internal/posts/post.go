// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package posts implements the publishing domain: authoring, listing, and
// searching blog posts.
package posts

import "time"

// Post represents a published or draft article on the platform.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	Tags      *string   `json:"tags"` // Comma-joined list; nil when the post is untagged.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter narrows a post listing.
type Filter struct {
	// Search matches case-insensitively against title, content, and tags.
	Search string
}

// Field names used for validation and response mapping.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldTags    = "tags"
	FieldID      = "id"
	FieldPost    = "post"
)

// Input length limits enforced before persistence.
const (
	TitleMinLen   = 3
	TitleMaxLen   = 255
	ContentMinLen = 10
)
