package repositories

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bankRepository implements BankRepository interface
type bankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepository{db: db}
}

// List lists all banks
func (r *bankRepository) List(ctx context.Context) ([]*models.Bank, error) {
	var banks []*models.Bank
	err := r.db.WithContext(ctx).Order("id").Find(&banks).Error
	return banks, err
}

// Exists checks if a bank exists
func (r *bankRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bank{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
