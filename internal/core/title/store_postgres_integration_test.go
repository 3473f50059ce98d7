// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package title_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/core/title"
	"github.com/taibuivan/recenzo/internal/platform/database/schema"
	"github.com/taibuivan/recenzo/internal/platform/migration"
	"github.com/taibuivan/recenzo/internal/platform/postgres"
	"github.com/taibuivan/recenzo/pkg/uuid"
)

// openTestPool connects to the database named by TEST_DATABASE_URL, running
// migrations first. Tests are skipped when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", slog.Default()))

	pool, err := postgres.NewPool(context.Background(), dsn, slog.Default())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// insertAccount creates a throwaway reviewer and schedules its removal.
// Deleting the account cascades its reviews.
func insertAccount(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.New()
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.RefAccount.Table, schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.Email)

	_, err := pool.Exec(context.Background(), query, id, "rater-"+id, id+"@test.invalid")
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefAccount.Table, schema.RefAccount.ID), id)
	})
	return id
}

func insertReview(t *testing.T, pool *pgxpool.Pool, titleID int, authorID string, score int) {
	t.Helper()

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.RefReview.Table,
		schema.RefReview.TitleID, schema.RefReview.AuthorID, schema.RefReview.Text, schema.RefReview.Score)

	_, err := pool.Exec(context.Background(), query, titleID, authorID, "scored", score)
	require.NoError(t, err)
}

func createTitle(t *testing.T, repo *title.PostgresRepository, name string) *title.Title {
	t.Helper()

	entity := &title.Title{Name: name, Year: 2001, Description: "-empty-"}
	require.NoError(t, repo.Create(context.Background(), entity, nil))

	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), entity.ID)
	})
	return entity
}

/*
TestPostgresRepository_Rating verifies the derived rating end to end:
scores of 7 and 9 average to 8.0 after rounding to one decimal, and a
title with no reviews reads back with no rating at all.
*/
func TestPostgresRepository_Rating(t *testing.T) {
	pool := openTestPool(t)
	repo := title.NewPostgresRepository(pool)

	reviewed := createTitle(t, repo, "Twice Reviewed "+uuid.New())
	unreviewed := createTitle(t, repo, "Never Reviewed "+uuid.New())

	insertReview(t, pool, reviewed.ID, insertAccount(t, pool), 7)
	insertReview(t, pool, reviewed.ID, insertAccount(t, pool), 9)

	got, err := repo.FindByID(context.Background(), reviewed.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8.0, *got.Rating)

	got, err = repo.FindByID(context.Background(), unreviewed.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

/*
TestPostgresRepository_RatingRoundsHalfUp pins the rounding rule on a
half-decimal boundary: scores of 8 and 9 average to 8.5, not 8 or 9.
*/
func TestPostgresRepository_RatingRoundsHalfUp(t *testing.T) {
	pool := openTestPool(t)
	repo := title.NewPostgresRepository(pool)

	reviewed := createTitle(t, repo, "Half Decimal "+uuid.New())

	insertReview(t, pool, reviewed.ID, insertAccount(t, pool), 8)
	insertReview(t, pool, reviewed.ID, insertAccount(t, pool), 9)

	got, err := repo.FindByID(context.Background(), reviewed.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8.5, *got.Rating)
}
