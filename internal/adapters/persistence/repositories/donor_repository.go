package repositories

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// donorRepository implements DonorRepository interface
type donorRepository struct {
	db *gorm.DB
}

// NewDonorRepository creates a new donor repository
func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

// Create creates a new donor
func (r *donorRepository) Create(ctx context.Context, donor *models.Donor) error {
	return r.db.WithContext(ctx).Create(donor).Error
}

// GetByID gets a donor by ID
func (r *donorRepository) GetByID(ctx context.Context, id uint) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&donor).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// Update updates a donor
func (r *donorRepository) Update(ctx context.Context, donor *models.Donor) error {
	return r.db.WithContext(ctx).Save(donor).Error
}

// Delete permanently removes a donor
func (r *donorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Donor{}, id).Error
}

// List lists donors with pagination
func (r *donorRepository) List(ctx context.Context, offset, limit int) ([]*models.Donor, int64, error) {
	var donors []*models.Donor
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Donor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&donors).Error; err != nil {
		return nil, 0, err
	}

	return donors, total, nil
}

// History returns a donor's donations, newest first
func (r *donorRepository) History(ctx context.Context, donorID uint) ([]*models.DonorHistoryRow, error) {
	var rows []*models.DonorHistoryRow
	err := r.db.WithContext(ctx).
		Table("donors d").
		Select("d.full_name, d.age, d.blood_group, dn.donation_date, dn.units").
		Joins("JOIN donations dn ON d.id = dn.donor_id").
		Where("d.id = ?", donorID).
		Order("dn.donation_date DESC").
		Scan(&rows).Error
	return rows, err
}

// ExistsByContact checks if a donor with the contact number exists
func (r *donorRepository) ExistsByContact(ctx context.Context, contactNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Donor{}).Where("contact_number = ?", contactNumber).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if a donor with the email exists
func (r *donorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Donor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
