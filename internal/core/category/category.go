// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category implements the title category taxonomy.

A category is a coarse bucket for titles ("Movies", "Books", "Music"). Each
title belongs to at most one category, addressed everywhere by slug.
*/
package category

// # Limits

const (
	// MaxNameLen is the maximum category name length.
	MaxNameLen = 100
	// MaxSlugLen is the maximum category slug length.
	MaxSlugLen = 50
)

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Category represents a single taxonomy bucket.
//
// The numeric ID is internal; the slug is the public identifier.
type Category struct {
	ID   int    `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
