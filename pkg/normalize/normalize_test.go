// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidtube/pkg/normalize"
)

/*
TestUsername verifies that visually equivalent handles collide.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chai", "chai"},
		{"  chai  ", "chai"},
		{"ｃｈａｉ", "chai"},
		{"STRASSE", "strasse"},
		{"chai_aur_code", "chai_aur_code"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Username(tt.in), tt.in)
	}
}

/*
TestEmail folds case and trims.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "chai@example.com", normalize.Email(" Chai@Example.COM "))
	assert.Equal(t, normalize.Email("A@B.C"), normalize.Identifier("a@b.c"))
}

/*
TestDisplayName keeps case and collapses whitespace.
*/
func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Chai aur Code", normalize.DisplayName("  Chai \t aur\nCode "))
	// "e" + combining acute composes to a single rune.
	assert.Equal(t, "Café", normalize.DisplayName("Café"))
}

/*
TestText trims content only.
*/
func TestText(t *testing.T) {
	assert.Equal(t, "hello  world", normalize.Text("  hello  world \n"))
	assert.Empty(t, normalize.Text(" \t "))
}
