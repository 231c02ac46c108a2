package applications

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"regportal-backend/internal/shared/metrics"
)

// Service contains business logic for registration applications.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Submit stores a new application. The form payload is accepted as-is; the
// portal imposes no schema on it.
func (s *Service) Submit(ctx context.Context, userID, company, country string, formData json.RawMessage) (Application, error) {
	if userID == "" {
		return Application{}, errors.New("user id is required")
	}
	if len(formData) == 0 {
		formData = json.RawMessage("{}")
	}

	app := Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   company,
		Country:   country,
		FormData:  formData,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	metrics.IncApplicationSubmitted()
	return app, nil
}

// List returns the user's applications, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}
