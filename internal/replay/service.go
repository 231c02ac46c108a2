package replay

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"regportal-backend/internal/applications"
	"regportal-backend/internal/documents"
	"regportal-backend/internal/shared/metrics"
)

// Service re-applies client-buffered operations against the stores.
type Service struct {
	Documents    *documents.Service
	Applications *applications.Service
}

// NewService constructs a Service.
func NewService(docSvc *documents.Service, appSvc *applications.Service) *Service {
	return &Service{Documents: docSvc, Applications: appSvc}
}

// Process applies each item independently, in input order, and returns one
// result per item in the same order. A failing item never aborts the batch or
// rolls back its neighbors. ownerID comes from the caller's session; an item
// may name its own owner only when no session owner is supplied.
func (s *Service) Process(ctx context.Context, ownerID string, items []Item) []Result {
	start := metrics.NowMillis()
	defer func() {
		metrics.ObserveReplayBatchMs(metrics.NowMillis() - start)
	}()

	results := make([]Result, 0, len(items))
	for _, item := range items {
		if err := s.apply(ctx, ownerID, item); err != nil {
			metrics.IncReplayItemFailed()
			results = append(results, Result{ID: item.ID, Status: StatusError, Message: err.Error()})
			continue
		}
		metrics.IncReplayItemOK()
		results = append(results, Result{ID: item.ID, Status: StatusSuccess})
	}
	return results
}

func (s *Service) apply(ctx context.Context, ownerID string, item Item) error {
	owner := ownerID
	if owner == "" {
		owner = strings.TrimSpace(item.UserID)
	}
	if owner == "" {
		return errors.New("no resolvable owner for item")
	}

	switch item.Type {
	case TypeDocument:
		data, err := decodeDataURI(item.FileData)
		if err != nil {
			return err
		}
		if item.ExpiryDays != nil {
			_, err = s.Documents.Upload(ctx, owner, item.DocumentType, item.Filename, item.ExpiryDays, bytes.NewReader(data))
			return err
		}
		expiry, err := parseExpiryDate(item.ExpiryDate)
		if err != nil {
			return err
		}
		_, err = s.Documents.UploadWithExpiry(ctx, owner, item.DocumentType, item.Filename, expiry, bytes.NewReader(data))
		return err
	case TypeApplication:
		_, err := s.Applications.Submit(ctx, owner, item.Company, item.Country, item.FormData)
		return err
	default:
		return fmt.Errorf("unknown item type %q", item.Type)
	}
}

// parseExpiryDate accepts the wire formats clients buffer: RFC 3339 or a bare
// calendar date. Empty means no expiry.
func parseExpiryDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid expiry_date %q", raw)
}

// decodeDataURI strips the data-URI prefix ("data:...;base64,") and decodes
// the payload after the first comma.
func decodeDataURI(raw string) ([]byte, error) {
	if raw == "" {
		return nil, errors.New("file_data is required")
	}
	_, payload, found := strings.Cut(raw, ",")
	if !found {
		return nil, errors.New("file_data must be a base64 data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode file_data: %w", err)
	}
	return data, nil
}
