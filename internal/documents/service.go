package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"regportal-backend/internal/extract"
	"regportal-backend/internal/shared/metrics"
	"regportal-backend/internal/shared/storage/object"
	"regportal-backend/internal/shared/telemetry"
)

// Service contains business logic for supporting documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo, now: time.Now}
}

type keyRemover interface {
	Remove(ctx context.Context, storageKey string) error
}

func (s *Service) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Upload persists a document whose expiry is given as a day count from now.
func (s *Service) Upload(ctx context.Context, userID, documentType, fileName string, expiryDays *int, r io.Reader) (Document, error) {
	if expiryDays != nil && *expiryDays < 0 {
		return Document{}, fmt.Errorf("%w: expiry_days must not be negative", ErrInvalidInput)
	}
	var expiry *time.Time
	if expiryDays != nil {
		t := s.timeNow().UTC().AddDate(0, 0, *expiryDays)
		expiry = &t
	}
	return s.UploadWithExpiry(ctx, userID, documentType, fileName, expiry, r)
}

// UploadWithExpiry persists the file bytes first and then records the metadata
// row, superseding any prior active document of the same type. A failed byte
// write never produces a metadata row. A past expiry is accepted; the document
// simply lists as expired.
func (s *Service) UploadWithExpiry(ctx context.Context, userID, documentType, fileName string, expiry *time.Time, r io.Reader) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(documentType) == "" {
		return Document{}, fmt.Errorf("%w: document_type is required", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if size == 0 {
		s.removeBestEffort(ctx, storageKey)
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	now := s.timeNow().UTC()

	doc := Document{
		ID:           uuid.NewString(),
		UserID:       userID,
		DocumentType: documentType,
		FileName:     fileName,
		StorageKey:   storageKey,
		MimeType:     mimeType,
		SizeBytes:    size,
		UploadDate:   now,
		ExpiryDate:   expiry,
		Status:       StatusActive,
	}

	superseded, err := s.Repo.CreateSuperseding(ctx, doc)
	if err != nil {
		// Undo the orphaned object; the metadata row was never created.
		s.removeBestEffort(ctx, storageKey)
		return Document{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	metrics.IncDocumentUploaded()
	if superseded > 0 {
		metrics.IncDocumentSuperseded()
	}

	s.extractBestEffort(ctx, doc)
	return doc, nil
}

// Annotated is a document together with its derived expiry classification.
type Annotated struct {
	Document
	ExpiryStatus    string
	DaysUntilExpiry *int
}

// List returns the user's active documents, newest first, annotated with the
// derived expiry status.
func (s *Service) List(ctx context.Context, userID string) ([]Annotated, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	docs, err := s.Repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.timeNow().UTC()
	out := make([]Annotated, 0, len(docs))
	for _, doc := range docs {
		status, days := ClassifyExpiry(doc.ExpiryDate, now)
		out = append(out, Annotated{Document: doc, ExpiryStatus: status, DaysUntilExpiry: days})
	}
	return out, nil
}

// Download returns a document's metadata and bytes, scoped to its owner.
// Metadata whose bytes are missing from storage is reported as not found.
func (s *Service) Download(ctx context.Context, userID, documentID string) (Document, []byte, error) {
	if userID == "" || documentID == "" {
		return Document{}, nil, ErrNotFound
	}

	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return Document{}, nil, err
	}

	body, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		telemetry.Error("document.bytes_missing", map[string]any{
			"document_id": doc.ID,
			"storage_key": doc.StorageKey,
			"error":       err.Error(),
		})
		return Document{}, nil, ErrNotFound
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return Document{}, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return doc, data, nil
}

func (s *Service) removeBestEffort(ctx context.Context, storageKey string) {
	remover, ok := s.Store.(keyRemover)
	if !ok {
		return
	}
	if err := remover.Remove(ctx, storageKey); err != nil {
		telemetry.Warn("document.cleanup_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}

// extractBestEffort derives a plain-text copy of PDF uploads for back-office
// review. Failure never affects the upload.
func (s *Service) extractBestEffort(ctx context.Context, doc Document) {
	extractedKey, err := extract.Text(ctx, s.Store, doc.StorageKey, doc.MimeType)
	if err != nil {
		if err != extract.ErrUnsupported {
			telemetry.Warn("document.extract_failed", map[string]any{
				"document_id": doc.ID,
				"mime_type":   doc.MimeType,
				"error":       err.Error(),
			})
		}
		return
	}
	if err := s.Repo.UpdateExtraction(ctx, doc.UserID, doc.ID, extractedKey); err != nil {
		telemetry.Warn("document.extract_record_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}
}
