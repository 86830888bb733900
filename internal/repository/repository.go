package repository

import (
	"context"
	"errors"
	"time"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
)

var (
	// ErrNotFound covers missing principals and failed consume attempts.
	// Consume failures deliberately do not distinguish "wrong" from
	// "expired".
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the email is already registered
	// within the same collection.
	ErrDuplicateEmail = errors.New("email already registered")
)

// StudentStore persists student principals. Consume* methods are atomic:
// under concurrent attempts with the same code or token, at most one call
// succeeds.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByFederatedID(ctx context.Context, federatedID string) (*models.Student, error)
	UpdateLastLogin(ctx context.Context, id string) error
	SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error
	ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*models.Student, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*models.Student, error)
	LinkFederatedID(ctx context.Context, id, federatedID, provider string) error
}

// CompanyStore is the company-side mirror of StudentStore. The two
// collections are independent email namespaces.
type CompanyStore interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id string) (*models.Company, error)
	FindByEmail(ctx context.Context, email string) (*models.Company, error)
	UpdateLastLogin(ctx context.Context, id string) error
	SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error
	ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*models.Company, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*models.Company, error)
}
