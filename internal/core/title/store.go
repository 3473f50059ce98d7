// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// Repository defines the storage contract for titles.
//
// Implementations are responsible for hydrating Category, Genres and Rating
// on every read; callers never see a half-filled entity.
type Repository interface {
	// Create persists the title and its genre links in one transaction.
	Create(context context.Context, title *Title, genreIDs []int) error

	// FindByID retrieves a fully hydrated title.
	FindByID(context context.Context, id int) (*Title, error)

	// List returns a hydrated, filtered page of titles ordered by name.
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	// Update rewrites the title row; a non-nil genreIDs replaces the genre
	// links wholesale.
	Update(context context.Context, title *Title, genreIDs []int, replaceGenres bool) error

	// Delete removes the title. Reviews and genre links cascade.
	Delete(context context.Context, id int) error
}
