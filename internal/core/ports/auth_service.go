package ports

import (
	"context"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (string, error)
}

// TokenService issues and verifies stateless bearer tokens. Verify returns
// the token subject or a *domain.TokenError.
type TokenService interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

// PasswordHasher hashes and checks plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
