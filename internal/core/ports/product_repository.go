package ports

import (
	"context"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, bool, error)
	// ListByOwner returns the owner's products. A non-empty keyword narrows
	// the result to names containing it, ignoring case.
	ListByOwner(ctx context.Context, ownerID, keyword string) ([]*domain.Product, error)
	// Update overwrites the mutable fields of the row matching both p.ID and p.OwnerID.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id, ownerID string) error
}
