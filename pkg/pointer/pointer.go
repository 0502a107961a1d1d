// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer provides small generic helpers for optional values,
// used mainly when building partial-update inputs.
package pointer

// To returns a pointer to the provided value, e.g. pointer.To("draft").
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
