package repositories

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin account
func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetByID gets an admin by ID
func (r *adminRepository) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByUsername gets an admin by username
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Update updates an admin
func (r *adminRepository) Update(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// Delete permanently removes an admin account
func (r *adminRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Admin{}, id).Error
}

// List lists all admin accounts
func (r *adminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	err := r.db.WithContext(ctx).Order("id").Find(&admins).Error
	return admins, err
}

// ExistsByUsername checks if username exists
func (r *adminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByUsernameExcept checks if another admin already holds the username
func (r *adminRepository) ExistsByUsernameExcept(ctx context.Context, username string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("username = ? AND id <> ?", username, id).
		Count(&count).Error
	return count > 0, err
}
