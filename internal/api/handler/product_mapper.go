package handler

import (
	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProductRequest, image *ports.ImageUpload, idempotencyKey string) ports.CreateProductInput {
	in := ports.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Image:          image,
		IdempotencyKey: idempotencyKey,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

func toUpdateInput(req updateProductRequest, image *ports.ImageUpload) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Image:       image,
	}
}

// --- Service result → HTTP response ---

// toProductResponse renders p for its owner. Products are only ever shown to
// their owner, so the owner's username comes from the principal.
func toProductResponse(p *domain.Product, owner *domain.User) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
		ImageName:   p.ImageName,
		UserID:      p.OwnerID,
		Username:    owner.Username,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func toProductListResponse(products []*domain.Product, owner *domain.User) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p, owner)
	}
	return out
}
