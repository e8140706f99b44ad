package ports

import (
	"context"
	"io"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

// ImageUpload is an image attachment as received from the transport layer.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// CreateProductInput carries the fields of a new product.
type CreateProductInput struct {
	Name           string
	Description    string
	Quantity       int
	Price          float64
	Image          *ImageUpload // optional
	IdempotencyKey string
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *float64
	Image       *ImageUpload
}

// CreateProductResult reports whether the product was created by this call
// or replayed from an earlier request with the same idempotency key.
type CreateProductResult struct {
	Product        *domain.Product
	AlreadyExisted bool
}

// ProductService exposes ownership-scoped product operations. The principal
// is always the authenticated caller.
type ProductService interface {
	List(ctx context.Context, principal *domain.User, keyword string) ([]*domain.Product, error)
	Get(ctx context.Context, principal *domain.User, id string) (*domain.Product, error)
	Create(ctx context.Context, principal *domain.User, input CreateProductInput) (*CreateProductResult, error)
	Update(ctx context.Context, principal *domain.User, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, principal *domain.User, id string) error
}

// ImageStore persists product images and returns the stored name.
type ImageStore interface {
	Save(ctx context.Context, upload ImageUpload) (string, error)
	Remove(ctx context.Context, name string) error
}

// ImageJanitor removes images that are no longer referenced, off the request path.
type ImageJanitor interface {
	Enqueue(name string)
}

// IdempotencyStore hands out creation keys. Reserve claims the key for
// productID, or reports the product id an earlier request claimed it for.
type IdempotencyStore interface {
	Reserve(ctx context.Context, ownerID, key, productID string) (existingID string, reserved bool, err error)
	Release(ctx context.Context, ownerID, key string) error
}
