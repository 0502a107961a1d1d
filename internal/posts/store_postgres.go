// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/papyr/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on top of pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = "id, title, slug, content, published, tags, createdat, updatedat"

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	query := `SELECT ` + postColumns + ` FROM content.post`
	countQuery := `SELECT count(*) FROM content.post`

	args := []any{}
	countArgs := []any{}

	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		condition := ` WHERE (title ILIKE $1 OR content ILIKE $1 OR tags ILIKE $1)`
		query += condition
		countQuery += condition
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += ` ORDER BY createdat DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_posts")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	var result []*Post
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.Published, &post.Tags, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		result = append(result, post)
	}

	return result, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Post, error) {
	const query = `SELECT ` + postColumns + ` FROM content.post WHERE id = $1`

	post := &Post{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Published, &post.Tags, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post")
	}

	return post, nil
}

func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO content.post (id, title, slug, content, published, tags, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		post.ID, post.Title, post.Slug, post.Content, post.Published, post.Tags, post.CreatedAt, post.UpdatedAt,
	)
	return dberr.Wrap(err, "create_post")
}

func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE content.post
		SET title = $2, slug = $3, content = $4, published = $5, tags = $6, updatedat = $7
		WHERE id = $1`

	post.UpdatedAt = time.Now()
	cmd, err := repository.db.Exec(context, query,
		post.ID, post.Title, post.Slug, post.Content, post.Published, post.Tags, post.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_post")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM content.post WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
