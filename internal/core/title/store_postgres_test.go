// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/recenzo/internal/platform/database/schema"
)

/*
TestBaseSelect_RatingDerivation pins the shape of the read query that
computes the rating, the piece of behavior the scale hangs on:

 1. The rating is the average review score rounded half-up to one decimal
    (Postgres ROUND on numeric), so scores of 7 and 9 read back as 8.0.
 2. The aggregate is attached with a LEFT JOIN, so a title without reviews
    still reads back, with a NULL rating.
 3. The aggregate is grouped per title, never across titles.

The end-to-end values are asserted against a live database in
TestPostgresRepository_Rating (integration build tag).
*/
func TestBaseSelect_RatingDerivation(t *testing.T) {
	query := baseSelect()

	// 1. Half-up rounding to one decimal over the score average.
	rounding := fmt.Sprintf("ROUND(AVG(%s)::numeric, 1)::float8", schema.RefReview.Score)
	assert.Contains(t, query, rounding)

	// 2. Unreviewed titles must survive the join with rating NULL.
	assert.Contains(t, query, "LEFT JOIN (")
	assert.Contains(t, query, "r.rating")

	// 3. One aggregate row per title.
	assert.Contains(t, query, fmt.Sprintf("GROUP BY %s", schema.RefReview.TitleID))
	assert.Contains(t, query, fmt.Sprintf("r.%s = t.%s", schema.RefReview.TitleID, schema.RefTitle.ID))

	// The aggregate reads the review table, nothing else.
	assert.Equal(t, 1, strings.Count(query, schema.RefReview.Table))
}
