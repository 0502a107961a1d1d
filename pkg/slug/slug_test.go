// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/papyr/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple_title", input: "My First Post", want: "my-first-post"},
		{name: "accents_stripped", input: "Café Déjà Vu", want: "cafe-deja-vu"},
		{name: "punctuation_collapses", input: "Go 1.24 -- what's new?!", want: "go-1-24-what-s-new"},
		{name: "leading_trailing_trimmed", input: "  ...hello...  ", want: "hello"},
		{name: "empty", input: "", want: ""},
		{name: "only_symbols", input: "!!!", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, slug.From(test.input))
		})
	}
}
