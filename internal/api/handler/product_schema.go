package handler

import "time"

// createProductRequest mirrors the multipart form of POST /api/products.
// Quantity and Price are pointers so a missing field is told apart from zero.
type createProductRequest struct {
	Name        string   `form:"name" validate:"required,notblank,max=100"`
	Description string   `form:"description" validate:"max=500"`
	Quantity    *int     `form:"quantity" validate:"required,gte=0"`
	Price       *float64 `form:"price" validate:"required,gte=0.01"`
}

// updateProductRequest mirrors PUT /api/product/:id; every field is optional.
type updateProductRequest struct {
	Name        *string  `form:"name" validate:"omitnil,notblank,max=100"`
	Description *string  `form:"description" validate:"omitnil,max=500"`
	Quantity    *int     `form:"quantity" validate:"omitnil,gte=0"`
	Price       *float64 `form:"price" validate:"omitnil,gte=0.01"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	ImageName   string    `json:"image_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
