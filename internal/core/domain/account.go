package domain

import (
	"errors"
	"time"
)

// Account types control access to inventory management pages.
const (
	AccountTypeClient   = "client"
	AccountTypeEmployee = "employee"
	AccountTypeAdmin    = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrStoreFailure       = errors.New("account store operation failed")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// Token verification failures. Callers use these to distinguish a session
// that simply needs a fresh login from a token that was tampered with.
var (
	ErrTokenExpired      = errors.New("session token expired")
	ErrTokenBadSignature = errors.New("session token signature invalid")
	ErrTokenMalformed    = errors.New("session token malformed")
	ErrMissingSecret     = errors.New("token signing secret not configured")
)

// Account is the full credential record as persisted. The PasswordHash field
// never leaves the repository/service layer; anything handed to the token
// issuer or a view goes through Profile().
type Account struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstname"`
	LastName     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AccountType  string    `json:"account_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the hash-free view of an account. It has no field that could
// carry a credential, so a Profile can be embedded in session claims or a
// rendered page without any stripping step.
type Profile struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
}

// Profile derives the hash-free view of the account.
func (a *Account) Profile() Profile {
	return Profile{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		AccountType: a.AccountType,
	}
}

// CanManageInventory reports whether the account type grants access to
// inventory management pages.
func (p Profile) CanManageInventory() bool {
	return p.AccountType == AccountTypeEmployee || p.AccountType == AccountTypeAdmin
}
