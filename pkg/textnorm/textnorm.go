// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

// Package textnorm folds Unicode strings into an accent-insensitive,
// case-insensitive canonical form for search matching.
//
// # Usage
//
// The same fold is applied to the search query and to every candidate field
// (title, author, tag), so substring containment is well-defined after both
// sides have been normalized. "Đại Chiến" and "dai chien" fold identically.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts an arbitrary Unicode string into its canonical search form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Folds the Vietnamese letter with stroke (đ/Đ) to its base Latin letter.
// 4. Converts to lowercase.
//
// Fold is stable and idempotent: Fold(Fold(s)) == Fold(s).
func Fold(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. đ/Đ carry a stroke, not a combining mark, so NFD leaves them intact.
	result = strings.Map(func(r rune) rune {
		switch r {
		case 'đ', 'Đ':
			return 'd'
		}
		return r
	}, result)

	// 3. Lowercase
	return strings.ToLower(result)
}

// Contains reports whether the folded haystack contains the folded needle.
// An empty needle always matches.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
