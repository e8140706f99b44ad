package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
	"github.com/inventory-app/inventory-api/internal/pkg/metrics"
)

var errMissingPrincipal = errors.New("missing principal")

const msgIdempotencyKeyInUse = "Idempotency key is already in use"

type ProductService struct {
	repo    ports.ProductRepository
	images  ports.ImageStore
	janitor ports.ImageJanitor
	idem    ports.IdempotencyStore // optional
	logger  zerolog.Logger
	now     func() time.Time
}

func NewProductService(
	repo ports.ProductRepository,
	images ports.ImageStore,
	janitor ports.ImageJanitor,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		repo:    repo,
		images:  images,
		janitor: janitor,
		idem:    idem,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns the principal's products, optionally narrowed by a
// case-insensitive name keyword. Other owners' rows are never queried.
func (s *ProductService) List(ctx context.Context, principal *domain.User, keyword string) ([]*domain.Product, error) {
	if principal == nil {
		return nil, errMissingPrincipal
	}
	// A blank keyword lists everything; any other keyword is matched as given.
	if strings.TrimSpace(keyword) == "" {
		keyword = ""
	}
	products, err := s.repo.ListByOwner(ctx, principal.ID, keyword)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, principal *domain.User, id string) (*domain.Product, error) {
	return s.loadOwned(ctx, principal, id, ActionView)
}

// Create stores the optional image and inserts a product owned by the
// principal. A repeated idempotency key returns the product created first.
func (s *ProductService) Create(ctx context.Context, principal *domain.User, input ports.CreateProductInput) (*ports.CreateProductResult, error) {
	if principal == nil {
		return nil, errMissingPrincipal
	}

	s.logger.Info().Str("user_id", principal.ID).Msg("creating product")

	productID := uuid.NewString()
	existing, claimed, err := s.claim(ctx, principal, input.IdempotencyKey, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ports.CreateProductResult{Product: existing, AlreadyExisted: true}, nil
	}

	imageName := domain.DefaultImageName
	if input.Image != nil {
		name, err := s.images.Save(ctx, *input.Image)
		if err != nil {
			s.release(ctx, principal, input.IdempotencyKey, claimed)
			return nil, err
		}
		imageName = name
	}

	now := s.now().UTC()
	product := &domain.Product{
		ID:          productID,
		OwnerID:     principal.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Quantity:    input.Quantity,
		Price:       input.Price,
		ImageName:   imageName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Str("user_id", principal.ID).Msg("failed to save product")
		s.discard(imageName)
		s.release(ctx, principal, input.IdempotencyKey, claimed)
		return nil, domain.NewFieldError(domain.GeneralField, "Failed to create product")
	}

	metrics.ProductOperationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("product_id", product.ID).Str("user_id", principal.ID).Msg("product created")
	return &ports.CreateProductResult{Product: product}, nil
}

// Update applies the provided fields. A new image replaces the old one only
// after the row is saved.
func (s *ProductService) Update(ctx context.Context, principal *domain.User, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.loadOwned(ctx, principal, id, ActionUpdate)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", principal.ID).Str("product_id", id).Msg("updating product")

	oldImage := product.ImageName
	newImage := ""
	if input.Image != nil {
		name, err := s.images.Save(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		newImage = name
		product.ImageName = name
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	product.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Str("user_id", principal.ID).Msg("failed to update product")
		if newImage != "" {
			s.discard(newImage)
		}
		return nil, domain.NewFieldError(domain.GeneralField, "Failed to update product")
	}
	if newImage != "" {
		s.discard(oldImage)
	}

	metrics.ProductOperationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, principal *domain.User, id string) error {
	product, err := s.loadOwned(ctx, principal, id, ActionDelete)
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", principal.ID).Str("product_id", id).Msg("deleting product")

	if err := s.repo.Delete(ctx, product.ID, principal.ID); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Str("user_id", principal.ID).Msg("failed to delete product")
		return domain.NewFieldError(domain.GeneralField, "Failed to delete product")
	}
	s.discard(product.ImageName)

	metrics.ProductOperationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// loadOwned checks existence first and ownership second.
func (s *ProductService) loadOwned(ctx context.Context, principal *domain.User, id string, action Action) (*domain.Product, error) {
	if principal == nil {
		return nil, errMissingPrincipal
	}

	product, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if !found {
		s.logger.Warn().Str("product_id", id).Str("action", string(action)).Msg("product not found")
		return nil, domain.NewNotFoundError("Product not found")
	}

	if err := Authorize(principal, product, action); err != nil {
		s.logger.Warn().
			Str("user_id", principal.ID).
			Str("product_id", id).
			Str("action", string(action)).
			Msg("ownership check denied")
		return nil, err
	}
	return product, nil
}

// claim reserves key for productID before anything is written. When an
// earlier request holds the key, its product is returned; if that product is
// not stored (yet), the request is refused. A store outage never blocks creation.
func (s *ProductService) claim(ctx context.Context, principal *domain.User, key, productID string) (*domain.Product, bool, error) {
	if key == "" || s.idem == nil {
		return nil, false, nil
	}

	existingID, reserved, err := s.idem.Reserve(ctx, principal.ID, key, productID)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}

	product, found, err := s.repo.FindByID(ctx, existingID)
	if err != nil {
		return nil, false, fmt.Errorf("idempotent replay: %w", err)
	}
	if !found || !product.OwnedBy(principal.ID) {
		s.logger.Warn().Str("idempotency_key", key).Str("product_id", existingID).Msg("idempotency key held without a stored product")
		return nil, false, domain.NewFieldError(domain.GeneralField, msgIdempotencyKeyInUse)
	}

	s.logger.Info().Str("idempotency_key", key).Str("product_id", product.ID).Msg("idempotent replay")
	return product, false, nil
}

func (s *ProductService) release(ctx context.Context, principal *domain.User, key string, claimed bool) {
	if !claimed {
		return
	}
	if err := s.idem.Release(ctx, principal.ID, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

func (s *ProductService) discard(name string) {
	if name == "" || name == domain.DefaultImageName || s.janitor == nil {
		return
	}
	s.janitor.Enqueue(name)
}
