package users

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// Repo defines persistence operations for user accounts.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByPhone(ctx context.Context, phone string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
