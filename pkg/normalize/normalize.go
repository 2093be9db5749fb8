// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize puts user-supplied identifiers into a canonical form
// before they are stored or compared.
//
// # Usage
//
// Usernames and emails are unique per account, so "Chai", "ｃｈａｉ" and " chai "
// must all collide. Display names keep their case but lose stray whitespace.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// fold is safe for concurrent use.
	fold = cases.Fold()

	// whitespaceRun collapses runs of spaces, tabs and newlines.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Username returns the canonical handle.
//
// # Transformation Pipeline
//
// 1. NFKC (compatibility forms such as full-width letters become ASCII).
// 2. Unicode case folding.
// 3. Trim surrounding whitespace.
func Username(s string) string {
	return strings.TrimSpace(foldKC(s))
}

// Email returns the canonical address. The whole address is folded, local part included.
func Email(s string) string {
	return strings.TrimSpace(foldKC(s))
}

// Identifier canonicalises a login identifier that may be an email or a username.
func Identifier(s string) string {
	return strings.TrimSpace(foldKC(s))
}

// DisplayName composes to NFC and collapses internal whitespace.
func DisplayName(s string) string {
	composed := norm.NFC.String(s)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(composed, " "))
}

// Text trims free-form content (comments, tweets) and composes it to NFC.
func Text(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func foldKC(s string) string {
	result, _, err := transform.String(transform.Chain(norm.NFKC, fold), s)
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}
