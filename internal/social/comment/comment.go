// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements threaded discussion under reviews.
//
// Comments live two levels down (/titles/{id}/reviews/{id}/comments) and
// follow the same owner-or-staff mutation rule as reviews.
package comment

import "time"

const (
	FieldText = "text"
)

// Comment represents a single reply to a review.
type Comment struct {
	ID       int `json:"id"`
	ReviewID int `json:"-"`

	// AuthorID is the internal account reference backing the Author field.
	AuthorID string `json:"-"`
	// Author is the comment author's username.
	Author string `json:"author"`

	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}
