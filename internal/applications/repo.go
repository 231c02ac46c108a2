package applications

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("application not found")

// Repo defines persistence operations for applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	ListByUser(ctx context.Context, userID string) ([]Application, error)
}
