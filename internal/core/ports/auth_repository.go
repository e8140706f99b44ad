package ports

import (
	"context"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

// AuthRepository defines persistence for user identities.
// Find methods report absence through the found flag rather than an error.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
