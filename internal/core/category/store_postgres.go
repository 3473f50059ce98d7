// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

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

// NewPostgresRepository creates a new PostgreSQL category repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.RefCategory.Table, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefCategory.ID)

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefCategory.Table, schema.RefCategory.Slug)

	category := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return category, nil
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	where := ""
	args := []any{}

	if search != "" {
		where = fmt.Sprintf(" WHERE %s ILIKE $1", schema.RefCategory.Name)
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.RefCategory.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s%s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefCategory.Table, where, schema.RefCategory.Name,
		len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefCategory.Table, schema.RefCategory.Slug)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
