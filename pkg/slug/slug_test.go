// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/recenzo/pkg/slug"
)

/*
TestFrom verifies the slug pipeline over representative category and genre
names: accent folding, lowercasing, separator collapsing, and edge trimming.
*/
func TestFrom(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Drama", want: "drama"},
		{name: "multi_word", input: "Science Fiction", want: "science-fiction"},
		{name: "accents_folded", input: "Cinéma Vérité", want: "cinema-verite"},
		{name: "punctuation_collapsed", input: "Rock & Roll!!", want: "rock-roll"},
		{name: "edges_trimmed", input: "  --Talk Shows--  ", want: "talk-shows"},
		{name: "digits_kept", input: "Top 10 Lists", want: "top-10-lists"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.From(tc.input))
		})
	}
}
