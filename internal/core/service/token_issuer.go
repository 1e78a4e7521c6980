package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/csemotors/dealership/internal/core/domain"
)

// sessionClaims is the wire shape of a session token: the hash-free account
// profile plus the registered temporal claims. There is no field on this
// struct that could carry a credential, so nothing needs stripping before
// signing.
type sessionClaims struct {
	domain.Profile
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 session tokens with a server-held
// secret. There is no server-side revocation: a token stays valid until its
// natural expiry even after logout.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, domain.ErrMissingSecret
	}
	return &TokenIssuer{secret: []byte(secret)}, nil
}

// Issue signs the profile into a token expiring after ttl.
func (t *TokenIssuer) Issue(profile domain.Profile, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Profile: profile,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the embedded profile.
// Failures are reported as the typed domain token errors.
func (t *TokenIssuer) Verify(token string) (*domain.Profile, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(tkn *jwt.Token) (interface{}, error) {
		if tkn.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenBadSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenMalformed
	}

	profile := claims.Profile
	return &profile, nil
}
