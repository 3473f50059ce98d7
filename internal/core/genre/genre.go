// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre implements the genre taxonomy.
//
// Unlike categories, a title may carry any number of genres; the link lives
// in the core.titlegenre junction table owned by the title domain.
package genre

const (
	// MaxNameLen is the maximum genre name length.
	MaxNameLen = 100
	// MaxSlugLen is the maximum genre slug length.
	MaxSlugLen = 50
)

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Genre represents a single genre label, addressed publicly by slug.
type Genre struct {
	ID   int    `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
