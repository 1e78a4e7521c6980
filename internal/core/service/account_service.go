package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// bcryptCost matches the work factor the dealership has always used for
// stored credentials; raising it invalidates no existing hashes but slows
// every login.
const bcryptCost = 10

// AccountService implements registration, login, and account update.
type AccountService struct {
	repo     ports.AccountRepository
	issuer   ports.TokenIssuer
	guard    ports.LoginGuard
	tokenTTL time.Duration
}

func NewAccountService(repo ports.AccountRepository, issuer ports.TokenIssuer, guard ports.LoginGuard, tokenTTL time.Duration) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if guard == nil {
		guard = noopGuard{}
	}
	return &AccountService{repo: repo, issuer: issuer, guard: guard, tokenTTL: tokenTTL}
}

// noopGuard stands in when no throttling backend is configured.
type noopGuard struct{}

func (noopGuard) IsLocked(context.Context, string) (bool, error) { return false, nil }
func (noopGuard) RecordFailure(context.Context, string) error    { return nil }
func (noopGuard) Reset(context.Context, string) error            { return nil }

// Register hashes the password and creates the account. The store decides
// email uniqueness; a duplicate surfaces as domain.ErrAccountExists.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		// The plaintext must not appear in the wrapped error.
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		AccountType:  domain.AccountTypeClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and returns a signed session token plus the
// hash-free profile. Unknown email and wrong password both come back as
// domain errors the handler reports with one generic notice.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if locked, err := s.guard.IsLocked(ctx, email); err == nil && locked {
		return "", nil, domain.ErrTooManyAttempts
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		_ = s.guard.RecordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}
	_ = s.guard.Reset(ctx, email)

	profile := account.Profile()
	token, err := s.issuer.Issue(profile, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, &profile, nil
}

// Update writes the new name/email fields, re-reads the account, and
// re-issues a session token reflecting the updated profile. On a store
// failure no token is issued, so the caller's existing cookie stays as-is.
func (s *AccountService) Update(ctx context.Context, in ports.UpdateInput) (string, *domain.Profile, error) {
	if in.AccountID == "" || in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.Update(ctx, in.AccountID, in.FirstName, in.LastName, in.Email); err != nil {
		return "", nil, err
	}

	account, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}

	profile := account.Profile()
	token, err := s.issuer.Issue(profile, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, &profile, nil
}
