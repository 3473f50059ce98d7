// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title implements the reviewable works catalog.

A title is the unit everything else hangs off: it belongs to at most one
category, carries any number of genres, and accumulates reviews whose
average surfaces as the read-only rating field.

# Rating

The rating is never stored. It is computed at query time as the average
review score rounded to one decimal, and is null until the first review
arrives.
*/
package title

import (
	"github.com/taibuivan/recenzo/internal/core/category"
	"github.com/taibuivan/recenzo/internal/core/genre"
)

// # Limits

const (
	// MaxNameLen is the maximum title name length.
	MaxNameLen = 200

	// DefaultDescription fills in for titles submitted without one.
	DefaultDescription = "-empty-"
)

// # Field Identifiers

const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"
)

// Title represents a reviewable work.
type Title struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Description string `json:"description"`

	// Rating is the average review score rounded to one decimal, nil when
	// the title has no reviews yet.
	Rating *float64 `json:"rating"`

	// Category is nil when the title's category was deleted or never set.
	Category *category.Category `json:"category"`

	// Genres holds the title's genre labels, ordered by name.
	Genres []genre.Genre `json:"genre"`
}

// Filter narrows a title listing. Zero values mean "no filter".
type Filter struct {
	// CategorySlug matches titles in the category with this exact slug.
	CategorySlug string
	// GenreSlug matches titles carrying the genre with this exact slug.
	GenreSlug string
	// Name matches case-insensitively on a name substring.
	Name string
	// Year matches the release year exactly.
	Year *int
}
