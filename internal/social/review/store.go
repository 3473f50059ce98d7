// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines the storage contract for reviews.
//
// All lookups are scoped to the parent title so a review ID from another
// title's subtree reads as absent.
type Repository interface {
	Create(context context.Context, review *Review) error
	FindByID(context context.Context, titleID, id int) (*Review, error)
	ListByTitle(context context.Context, titleID, limit, offset int) ([]*Review, int, error)
	Update(context context.Context, review *Review) error
	Delete(context context.Context, titleID, id int) error
}
