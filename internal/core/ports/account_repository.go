package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// AccountRepository defines the interface for account persistence. The store
// is the source of truth for email uniqueness: Create reports a duplicate
// email as domain.ErrAccountExists.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id, firstName, lastName, email string) error
}
