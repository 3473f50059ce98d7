// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/database/schema"
	"github.com/taibuivan/recenzo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// baseSelect joins the author's username onto the review row.
func baseSelect() string {
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		schema.RefReview.ID, schema.RefReview.TitleID, schema.RefReview.AuthorID,
		schema.RefAccount.Username, schema.RefReview.Text, schema.RefReview.Score, schema.RefReview.PubDate,
		schema.RefReview.Table,
		schema.RefAccount.Table, schema.RefAccount.ID, schema.RefReview.AuthorID,
	)
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		schema.RefReview.Table,
		schema.RefReview.TitleID, schema.RefReview.AuthorID, schema.RefReview.Text, schema.RefReview.Score,
		schema.RefReview.ID, schema.RefReview.PubDate)

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.PubDate)

	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) FindByID(context context.Context, titleID, id int) (*Review, error) {
	query := baseSelect() + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`,
		schema.RefReview.TitleID, schema.RefReview.ID)

	review := &Review{}
	err := repository.db.QueryRow(context, query, titleID, id).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}

	return review, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefReview.Table, schema.RefReview.TitleID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := baseSelect() + fmt.Sprintf(` WHERE r.%s = $1 ORDER BY r.%s ASC, r.%s ASC LIMIT $2 OFFSET $3`,
		schema.RefReview.TitleID, schema.RefReview.PubDate, schema.RefReview.ID)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.PubDate,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2`,
		schema.RefReview.Table,
		schema.RefReview.Text, schema.RefReview.Score,
		schema.RefReview.TitleID, schema.RefReview.ID)

	cmd, err := repository.db.Exec(context, query, review.TitleID, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RefReview.Table, schema.RefReview.TitleID, schema.RefReview.ID)

	cmd, err := repository.db.Exec(context, query, titleID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
