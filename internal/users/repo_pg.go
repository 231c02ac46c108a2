package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user. Existing phone numbers are left untouched so
// repeated provisioning of the same account stays idempotent.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, phone, pin_hash, name, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (phone) DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Phone,
		user.PINHash,
		user.Name,
		user.CreatedAt,
	)
	return err
}

// GetByPhone returns the user provisioned with the given phone number.
func (r *PGRepo) GetByPhone(ctx context.Context, phone string) (User, error) {
	const query = `
SELECT id, phone, pin_hash, name, created_at
FROM users
WHERE phone = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, phone))
}

// GetByID returns a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, phone, pin_hash, name, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Phone,
		&user.PINHash,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
