// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims_whitespace", input: "  golang  \n", want: "golang"},
		{name: "partial_line_before_eof", input: "no newline", want: "no newline"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			reader := bufio.NewReader(strings.NewReader(test.input))

			got, err := promptLine(reader, "Title", &out)

			require.NoError(t, err)
			assert.Equal(t, test.want, got)
			assert.Equal(t, "Title: ", out.String())
		})
	}
}

func TestPromptLine_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := promptLine(reader, "Title", &out)

	require.Error(t, err)
}

func TestPromptMultiline(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("first line\nsecond line\n\nignored\n"))

	got, err := promptMultiline(reader, "Content", &out)

	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)
}

func TestPromptPassword_UsesSeam(t *testing.T) {
	original := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = original })

	var out bytes.Buffer
	got, err := promptPassword("Password", &out)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Password: ")
}
