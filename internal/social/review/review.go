// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements per-title reviews.

Each member may review a given title exactly once; the score feeds the
title's aggregate rating. Reviews are always addressed through their parent
title, never as a top-level resource.

# Ownership

The author is taken from the authenticated identity, never from the
payload. Editing and deletion follow the owner-or-staff rule: the author,
a moderator, or an administrator.
*/
package review

import "time"

// # Limits

const (
	// MinScore is the lowest admissible review score.
	MinScore = 1
	// MaxScore is the highest admissible review score.
	MaxScore = 10
)

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)

// Review represents a single member's verdict on a title.
type Review struct {
	ID      int `json:"id"`
	TitleID int `json:"-"`

	// AuthorID is the internal account reference backing the Author field.
	AuthorID string `json:"-"`
	// Author is the review author's username.
	Author string `json:"author"`

	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}
