package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll returns orders newest first.
	GetAll(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateContact(ctx context.Context, id uint, contact models.OrderContact) error
	Delete(ctx context.Context, id uint) error
}
