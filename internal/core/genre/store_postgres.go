// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/database/schema"
	"github.com/taibuivan/recenzo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL genre repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.RefGenre.Table, schema.RefGenre.Name, schema.RefGenre.Slug,
		schema.RefGenre.ID)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.Slug,
		schema.RefGenre.Table, schema.RefGenre.Slug)

	genre := &Genre{}
	err := repository.db.QueryRow(context, query, slug).Scan(&genre.ID, &genre.Name, &genre.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}

	return genre, nil
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	where := ""
	args := []any{}

	if search != "" {
		where = fmt.Sprintf(" WHERE %s ILIKE $1", schema.RefGenre.Name)
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.RefGenre.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s%s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.Slug,
		schema.RefGenre.Table, where, schema.RefGenre.Name,
		len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefGenre.Table, schema.RefGenre.Slug)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}
