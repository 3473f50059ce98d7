// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// NewPostgresRepository creates a new PostgreSQL comment repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// baseSelect joins the author's username onto the comment row.
func baseSelect() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		schema.RefComment.ID, schema.RefComment.ReviewID, schema.RefComment.AuthorID,
		schema.RefAccount.Username, schema.RefComment.Text, schema.RefComment.PubDate,
		schema.RefComment.Table,
		schema.RefAccount.Table, schema.RefAccount.ID, schema.RefComment.AuthorID,
	)
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		schema.RefComment.Table,
		schema.RefComment.ReviewID, schema.RefComment.AuthorID, schema.RefComment.Text,
		schema.RefComment.ID, schema.RefComment.PubDate)

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.PubDate)

	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) FindByID(context context.Context, reviewID, id int) (*Comment, error) {
	query := baseSelect() + fmt.Sprintf(` WHERE c.%s = $1 AND c.%s = $2`,
		schema.RefComment.ReviewID, schema.RefComment.ID)

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, reviewID, id).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefComment.Table, schema.RefComment.ReviewID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := baseSelect() + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s ASC, c.%s ASC LIMIT $2 OFFSET $3`,
		schema.RefComment.ReviewID, schema.RefComment.PubDate, schema.RefComment.ID)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.PubDate,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2`,
		schema.RefComment.Table, schema.RefComment.Text,
		schema.RefComment.ReviewID, schema.RefComment.ID)

	cmd, err := repository.db.Exec(context, query, comment.ReviewID, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RefComment.Table, schema.RefComment.ReviewID, schema.RefComment.ID)

	cmd, err := repository.db.Exec(context, query, reviewID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
