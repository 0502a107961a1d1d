// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Post URLs use the slug as the human-readable identifier, e.g. a post
// titled "Café Déjà Vu" lives at "cafe-deja-vu".
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonASCII matches whatever survives accent removal but is not slug-safe,
	// e.g. letters from non-Latin scripts.
	nonASCII = regexp.MustCompile(`[^a-z0-9-]+`)

	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
// Accented characters are decomposed (NFD) and stripped of combining marks,
// everything else non-alphanumeric becomes a hyphen, and hyphen runs collapse.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, transform.RemoveFunc(isCombiningMark))
	result, _, _ := transform.String(stripAccents, s)

	result = strings.ToLower(result)
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonASCII.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
