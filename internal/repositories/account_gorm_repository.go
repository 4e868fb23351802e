package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Create inserts the account as given. A unique constraint violation on
// email or phone is reported as ErrDuplicateEntry.
func (r *GORMAccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.ID = 0
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("account %s already registered: %w", account.Email, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByCredentials returns the first account whose email and password both
// equal the given values exactly.
func (r *GORMAccountRepository) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("email = ? AND password = ?", email, password).
		Take(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no account matches email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up account by email %s: %w", email, err)
	}
	return &account, nil
}
