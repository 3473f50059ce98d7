// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recenzo/internal/core/category"
	"github.com/taibuivan/recenzo/internal/core/genre"
	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/database/schema"
	"github.com/taibuivan/recenzo/internal/platform/dberr"
	"github.com/taibuivan/recenzo/pkg/slice"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL title repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// baseSelect joins the category and the per-title review average onto the
// title row. The rating subquery keeps the aggregate off the hot path for
// titles without reviews.
func baseSelect() string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, r.rating,
		       c.%s, c.%s, c.%s
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		LEFT JOIN (
			SELECT %s, ROUND(AVG(%s)::numeric, 1)::float8 AS rating
			FROM %s GROUP BY %s
		) r ON r.%s = t.%s`,
		schema.RefTitle.ID, schema.RefTitle.Name, schema.RefTitle.Year, schema.RefTitle.Description,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefTitle.Table,
		schema.RefCategory.Table, schema.RefTitle.CategoryID, schema.RefCategory.ID,
		schema.RefReview.TitleID, schema.RefReview.Score,
		schema.RefReview.Table, schema.RefReview.TitleID,
		schema.RefReview.TitleID, schema.RefTitle.ID,
	)
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, genreIDs []int) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer tx.Rollback(context)

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.RefTitle.Table,
		schema.RefTitle.Name, schema.RefTitle.Year, schema.RefTitle.Description, schema.RefTitle.CategoryID,
		schema.RefTitle.ID)

	var categoryID *int
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	if err := tx.QueryRow(context, insert, title.Name, title.Year, title.Description, categoryID).Scan(&title.ID); err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := insertGenreLinks(context, tx, title.ID, genreIDs); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Title, error) {
	query := baseSelect() + fmt.Sprintf(` WHERE t.%s = $1`, schema.RefTitle.ID)

	title, err := scanTitleRow(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, err
	}

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}
	return title, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	where, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s t%s`, schema.RefTitle.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query := baseSelect() + where + fmt.Sprintf(` ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d`,
		schema.RefTitle.Name, schema.RefTitle.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	for rows.Next() {
		title, err := scanTitleRow(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, title)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, genreIDs []int, replaceGenres bool) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer tx.Rollback(context)

	update := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.RefTitle.Table,
		schema.RefTitle.Name, schema.RefTitle.Year, schema.RefTitle.Description, schema.RefTitle.CategoryID,
		schema.RefTitle.ID)

	var categoryID *int
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	cmd, err := tx.Exec(context, update, title.ID, title.Name, title.Year, title.Description, categoryID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		clear := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.RefTitleGenre.Table, schema.RefTitleGenre.TitleID)
		if _, err := tx.Exec(context, clear, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := insertGenreLinks(context, tx, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefTitle.Table, schema.RefTitle.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

// insertGenreLinks writes the junction rows for a title.
func insertGenreLinks(context context.Context, tx pgx.Tx, titleID int, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.RefTitleGenre.Table, schema.RefTitleGenre.TitleID, schema.RefTitleGenre.GenreID)

	for _, genreID := range genreIDs {
		if _, err := tx.Exec(context, insert, titleID, genreID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}
	return nil
}

// attachGenres hydrates Genres for a batch of titles in a single query,
// mirroring the two-pass hydration used elsewhere for one-to-many loads.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := slice.Map(titles, func(title *Title) int { return title.ID })
	byID := make(map[int]*Title, len(titles))
	for _, title := range titles {
		title.Genres = make([]genre.Genre, 0)
		byID[title.ID] = title
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC`,
		schema.RefTitleGenre.TitleID, schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.Slug,
		schema.RefTitleGenre.Table,
		schema.RefGenre.Table, schema.RefGenre.ID, schema.RefTitleGenre.GenreID,
		schema.RefTitleGenre.TitleID,
		schema.RefGenre.Name,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		entry := genre.Genre{}
		if err := rows.Scan(&titleID, &entry.ID, &entry.Name, &entry.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, entry)
		}
	}
	return nil
}

// scanTitleRow hydrates a title plus its nullable category and rating.
func scanTitleRow(row pgx.Row) (*Title, error) {
	title := &Title{}

	var categoryID *int
	var categoryName, categorySlug *string

	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.Rating,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_title")
	}

	if categoryID != nil {
		title.Category = &category.Category{
			ID:   *categoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}
	return title, nil
}

// buildFilter translates a [Filter] into a WHERE clause against alias t.
func buildFilter(filter Filter) (string, []any) {
	clauses := []string{}
	args := []any{}

	appendClause := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.CategorySlug != "" {
		appendClause(fmt.Sprintf(
			`t.%s IN (SELECT %s FROM %s WHERE %s = $%%d)`,
			schema.RefTitle.CategoryID, schema.RefCategory.ID, schema.RefCategory.Table, schema.RefCategory.Slug,
		), filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		appendClause(fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s WHERE tg.%s = t.%s AND g.%s = $%%d)`,
			schema.RefTitleGenre.Table, schema.RefGenre.Table, schema.RefGenre.ID, schema.RefTitleGenre.GenreID,
			schema.RefTitleGenre.TitleID, schema.RefTitle.ID, schema.RefGenre.Slug,
		), filter.GenreSlug)
	}
	if filter.Name != "" {
		appendClause(fmt.Sprintf(`t.%s ILIKE $%%d`, schema.RefTitle.Name), "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		appendClause(fmt.Sprintf(`t.%s = $%%d`, schema.RefTitle.Year), *filter.Year)
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}
