package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // userID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// CreateSuperseding replaces any active document of the same type and appends
// the new one as active. The lock spans both steps, so the pair is atomic.
func (r *MemoryRepo) CreateSuperseding(ctx context.Context, doc Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	superseded := 0
	docs := r.data[doc.UserID]
	for i := range docs {
		if docs[i].DocumentType == doc.DocumentType && docs[i].Status == StatusActive {
			docs[i].Status = StatusReplaced
			superseded++
		}
	}
	doc.Status = StatusActive
	r.data[doc.UserID] = append(docs, doc)
	return superseded, nil
}

// ListActiveByUser returns the user's active documents, newest first.
func (r *MemoryRepo) ListActiveByUser(ctx context.Context, userID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Document
	for _, doc := range r.data[userID] {
		if doc.Status == StatusActive {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

// GetByID returns a document by ID for a user, regardless of status.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.data[userID] {
		if doc.ID == documentID {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// UpdateExtraction records the derived text object for a document.
func (r *MemoryRepo) UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.data[userID]
	for i := range docs {
		if docs[i].ID == documentID {
			if docs[i].ExtractedTextKey == "" {
				docs[i].ExtractedTextKey = extractedKey
			}
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
