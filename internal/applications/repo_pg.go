package applications

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, user_id, company, country, form_data, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	formData := string(app.FormData)
	if formData == "" {
		formData = "{}"
	}
	status := app.Status
	if status == "" {
		status = StatusPending
	}

	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		nullableString(app.Company),
		nullableString(app.Country),
		formData,
		status,
		app.CreatedAt,
	)
	return err
}

// ListByUser returns the user's applications, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	const query = `
SELECT id, user_id, company, country, form_data, status, created_at
FROM applications
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var app Application
		var company sql.NullString
		var country sql.NullString
		var formData string
		if err := rows.Scan(
			&app.ID,
			&app.UserID,
			&company,
			&country,
			&formData,
			&app.Status,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		if company.Valid {
			app.Company = company.String
		}
		if country.Valid {
			app.Country = country.String
		}
		app.FormData = json.RawMessage(formData)
		out = append(out, app)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
