// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the account [Repository].
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types by the dberr bridge so that no
// storage implementation detail leaks to clients.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the account [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accountColumns = `id, username, email, firstname, lastname, bio, role, isstaff, isactive, datejoined, updatedat`

/*
Create persists a new account row.

Description: Initializes the join/update timestamps and relies on the
uq_account_username / uq_account_email indexes to arbitrate races between
concurrent signups.
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, firstname, lastname, bio, role, isstaff, isactive, datejoined, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if user.DateJoined.IsZero() {
		user.DateJoined = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsStaff,
		user.IsActive,
		user.DateJoined,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "create_account")
}

// FindByID retrieves an account by its UUID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE id = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, id))
}

// FindByUsername retrieves an account by its canonical username.
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE username = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, username))
}

// FindByUsernameEmail retrieves the account exactly matching the pair.
func (repository *PostgresRepository) FindByUsernameEmail(context context.Context, username, email string) (*User, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE username = $1 AND email = $2`

	return repository.scanOne(repository.pool.QueryRow(context, query, username, email))
}

// List returns a page of accounts ordered by username, with an optional
// username substring filter.
func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*User, int, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users.account`
	countQuery := `SELECT count(*) FROM users.account`

	args := []any{}
	countArgs := []any{}

	if search != "" {
		query += ` WHERE username ILIKE $1`
		countQuery += ` WHERE username ILIKE $1`
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
	}

	query += fmt.Sprintf(" ORDER BY username ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_accounts")
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := scanInto(rows, user); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		users = append(users, user)
	}

	return users, total, nil
}

// Update rewrites the mutable account fields and bumps updatedat, which
// also invalidates any outstanding confirmation code.
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET username = $2, email = $3, firstname = $4, lastname = $5, bio = $6, role = $7, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		return dberr.Wrap(err, "update_account")
	}

	return nil
}

// Delete removes an account row. Authored reviews and comments go with it
// via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, username string) error {
	const query = `DELETE FROM users.account WHERE username = $1`

	cmd, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// scanOne hydrates a single account row, mapping no-rows to a named 404.
func (repository *PostgresRepository) scanOne(row pgx.Row) (*User, error) {
	user := &User{}
	if err := scanInto(row, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "get_account")
	}
	return user, nil
}

// scanInto scans the standard account column set into the entity.
func scanInto(row pgx.Row, user *User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsStaff,
		&user.IsActive,
		&user.DateJoined,
		&user.UpdatedAt,
	)
}
