// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import "context"

// Repository defines the data access contract for posts.
type Repository interface {
	// List returns one page of posts ordered by creation time, newest first,
	// along with the total count matching the filter.
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	// Get returns the post with the given ID.
	Get(context context.Context, id string) (*Post, error)

	// Create persists a new post.
	Create(context context.Context, post *Post) error

	// Update persists changes to an existing post.
	Update(context context.Context, post *Post) error

	// Delete permanently removes a post.
	Delete(context context.Context, id string) error
}
