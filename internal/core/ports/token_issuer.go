package ports

import (
	"time"

	"github.com/csemotors/dealership/internal/core/domain"
)

// TokenIssuer mints and verifies session tokens. Verify reports failure with
// one of the typed token errors in domain (expired, bad signature, malformed)
// so callers can tell re-login from tampering.
type TokenIssuer interface {
	Issue(profile domain.Profile, ttl time.Duration) (string, error)
	Verify(token string) (*domain.Profile, error)
}
