package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// RegisterInput carries the validated registration form fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateInput carries the validated account-update form fields. The password
// is not updatable through this flow.
type UpdateInput struct {
	AccountID string
	FirstName string
	LastName  string
	Email     string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
	Update(ctx context.Context, in UpdateInput) (string, *domain.Profile, error)
}
