package documents

import "context"

// Repo defines persistence operations for document metadata.
//
// CreateSuperseding must apply the supersede-then-insert for a given
// (owner, document_type) pair as one atomic unit so that at most one row per
// pair is ever active, even under concurrent uploads.
type Repo interface {
	CreateSuperseding(ctx context.Context, doc Document) (superseded int, err error)
	ListActiveByUser(ctx context.Context, userID string) ([]Document, error)
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string) error
}
