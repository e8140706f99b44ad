package service

import (
	"fmt"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/pkg/metrics"
)

// Action names the operation a principal attempts on a product.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize allows the action only when principal owns product. The denial
// message names the action; the error kind is always forbidden.
func Authorize(principal *domain.User, product *domain.Product, action Action) error {
	if principal != nil && product.OwnedBy(principal.ID) {
		return nil
	}
	metrics.OwnershipDenialsTotal.WithLabelValues(string(action)).Inc()
	return domain.NewForbiddenError(fmt.Sprintf("You are not allowed to %s this product", action))
}
