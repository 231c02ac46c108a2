package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateSuperseding flips any active document of the same (owner, type) to
// replaced and inserts the new row as active, in one transaction.
func (r *PGRepo) CreateSuperseding(ctx context.Context, doc Document) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const supersede = `
UPDATE documents
SET status = $1
WHERE user_id = $2 AND document_type = $3 AND status = $4`
	res, err := tx.ExecContext(ctx, supersede, StatusReplaced, doc.UserID, doc.DocumentType, StatusActive)
	if err != nil {
		return 0, err
	}
	superseded, _ := res.RowsAffected()

	const insert = `
INSERT INTO documents (
    id,
    user_id,
    document_type,
    filename,
    storage_key,
    mime_type,
    size_bytes,
    extracted_text_key,
    upload_date,
    expiry_date,
    status
) VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9, $10)`

	var expiry sql.NullTime
	if doc.ExpiryDate != nil {
		expiry = sql.NullTime{Time: *doc.ExpiryDate, Valid: true}
	}
	var mimeType sql.NullString
	if doc.MimeType != "" {
		mimeType = sql.NullString{String: doc.MimeType, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, insert,
		doc.ID,
		doc.UserID,
		doc.DocumentType,
		doc.FileName,
		doc.StorageKey,
		mimeType,
		doc.SizeBytes,
		doc.UploadDate,
		expiry,
		StatusActive,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(superseded), nil
}

const selectColumns = `
SELECT id, user_id, document_type, filename, storage_key, mime_type, size_bytes, extracted_text_key, upload_date, expiry_date, status
FROM documents`

// ListActiveByUser returns the user's active documents, newest first.
func (r *PGRepo) ListActiveByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = selectColumns + `
WHERE user_id = $1 AND status = $2
ORDER BY upload_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// GetByID fetches a document by ID scoped to its owner. Any status is
// returned so replaced documents stay reachable for audit.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = selectColumns + `
WHERE user_id = $1 AND id = $2
LIMIT 1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// UpdateExtraction records the derived text object for a document.
func (r *PGRepo) UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string) error {
	const query = `
UPDATE documents
SET extracted_text_key = $1
WHERE user_id = $2 AND id = $3 AND extracted_text_key IS NULL`
	_, err := r.DB.ExecContext(ctx, query, extractedKey, userID, documentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var mimeType sql.NullString
	var extractedKey sql.NullString
	var expiry sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.DocumentType,
		&doc.FileName,
		&doc.StorageKey,
		&mimeType,
		&doc.SizeBytes,
		&extractedKey,
		&doc.UploadDate,
		&expiry,
		&doc.Status,
	)
	if err != nil {
		return Document{}, err
	}
	if mimeType.Valid {
		doc.MimeType = mimeType.String
	}
	if extractedKey.Valid {
		doc.ExtractedTextKey = extractedKey.String
	}
	if expiry.Valid {
		t := expiry.Time
		doc.ExpiryDate = &t
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
