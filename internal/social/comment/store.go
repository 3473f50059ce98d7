// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the storage contract for comments, scoped to the
// parent review on every lookup.
type Repository interface {
	Create(context context.Context, comment *Comment) error
	FindByID(context context.Context, reviewID, id int) (*Comment, error)
	ListByReview(context context.Context, reviewID, limit, offset int) ([]*Comment, int, error)
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, reviewID, id int) error
}
