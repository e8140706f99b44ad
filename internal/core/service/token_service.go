package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

// TokenService issues and verifies HS256 JWTs whose subject is the user's email.
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithLeeway tolerates clock skew when checking expiry.
func WithLeeway(d time.Duration) TokenOption {
	return func(s *TokenService) { s.leeway = d }
}

// WithClock replaces the wall clock used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for subject valid for the configured lifetime.
func (s *TokenService) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("issue token: empty subject")
	}

	// NumericDate has second precision; truncating keeps exp exactly iat+ttl.
	now := s.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the token subject.
// Failures are reported as *domain.TokenError.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", &domain.TokenError{Kind: classifyTokenError(err), Err: err}
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", &domain.TokenError{Kind: domain.TokenMalformed, Err: errors.New("missing subject")}
	}
	return claims.Subject, nil
}

func classifyTokenError(err error) domain.TokenErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.TokenSignatureMismatch
	default:
		return domain.TokenMalformed
	}
}
