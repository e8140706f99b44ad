package domain

import (
	"errors"
	"time"
)

// DefaultImageName is recorded for products created without an image.
const DefaultImageName = "default.png"

var ErrProductNotFound = errors.New("product not found")

// Product is an inventory record owned by exactly one user. OwnerID is set
// at creation and never reassigned.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Price       float64   `json:"price" bson:"price"`
	ImageName   string    `json:"image_name" bson:"image_name"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the product belongs to the given user id.
func (p *Product) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.OwnerID == userID
}
