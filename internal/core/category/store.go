// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository defines the storage contract for categories.
type Repository interface {
	Create(context context.Context, category *Category) error
	FindBySlug(context context.Context, slug string) (*Category, error)
	List(context context.Context, search string, limit, offset int) ([]*Category, int, error)
	DeleteBySlug(context context.Context, slug string) error
}
