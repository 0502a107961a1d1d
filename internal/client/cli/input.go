// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a seam for term.ReadPassword so tests can avoid the terminal.
var readPassword = term.ReadPassword

// promptLine prints a prompt and reads one trimmed line. A partial line
// followed by EOF is still returned.
func promptLine(reader *bufio.Reader, prompt string, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, prompt+": "); err != nil {
		return "", err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// promptMultiline reads lines until the user enters an empty line. The
// collected text is joined with newlines.
func promptMultiline(reader *bufio.Reader, prompt string, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, prompt+" (empty line to finish):\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
