// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/papyr/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows            → 404 NOT_FOUND
//   - SQLSTATE 23505 (unique)  → 400 DUPLICATE
//   - other 23xxx (integrity)  → 400 DATABASE_ERROR (caller-correctable)
//   - everything else          → 500 DATABASE_ERROR
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		if pgError.Code == pgerrcode.UniqueViolation {
			return apperr.Duplicate("Value already exists")
		}
		if pgerrcode.IsIntegrityConstraintViolation(pgError.Code) {
			return apperr.Database(fmt.Errorf("%s: %w", action, err), true)
		}
	}

	return apperr.Database(fmt.Errorf("%s: %w", action, err), false)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
