package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown phone numbers and wrong PINs so
// callers cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	demoPhone = "+2341234567890"
	demoPIN   = "1234"
	demoName  = "Demo User"
)

// Service contains business logic for user accounts and authentication.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Authenticate verifies a phone + PIN pair and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, phone, pin string) (User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || pin == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID returns a user by ID.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

// Provision creates an account with a freshly hashed PIN. Re-provisioning an
// existing phone number is a no-op.
func (s *Service) Provision(ctx context.Context, phone, pin, name string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" || pin == "" {
		return errors.New("phone and pin are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.Repo.Create(ctx, User{
		ID:        uuid.NewString(),
		Phone:     phone,
		PINHash:   string(hash),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
}

// EnsureDemoUser seeds the demo account used by the pilot deployment.
func (s *Service) EnsureDemoUser(ctx context.Context) error {
	return s.Provision(ctx, demoPhone, demoPIN, demoName)
}
