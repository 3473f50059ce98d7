// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository defines the storage contract for genres.
type Repository interface {
	Create(context context.Context, genre *Genre) error
	FindBySlug(context context.Context, slug string) (*Genre, error)
	List(context context.Context, search string, limit, offset int) ([]*Genre, int, error)
	DeleteBySlug(context context.Context, slug string) error
}
