package repositories

import (
	"context"

	"storefront/internal/models"
)

// AccountRepository defines the interface for signup record access.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByCredentials(ctx context.Context, email, password string) (*models.Account, error)
}
