package repositories

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// recipientRepository implements RecipientRepository interface
type recipientRepository struct {
	db *gorm.DB
}

// NewRecipientRepository creates a new recipient repository
func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &recipientRepository{db: db}
}

// Create creates a new recipient
func (r *recipientRepository) Create(ctx context.Context, recipient *models.Recipient) error {
	return r.db.WithContext(ctx).Create(recipient).Error
}

// GetByID gets a recipient by ID
func (r *recipientRepository) GetByID(ctx context.Context, id uint) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipient).Error
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// Update updates a recipient
func (r *recipientRepository) Update(ctx context.Context, recipient *models.Recipient) error {
	return r.db.WithContext(ctx).Save(recipient).Error
}

// Delete permanently removes a recipient
func (r *recipientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Recipient{}, id).Error
}

// List lists recipients with pagination
func (r *recipientRepository) List(ctx context.Context, offset, limit int) ([]*models.Recipient, int64, error) {
	var recipients []*models.Recipient
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Recipient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&recipients).Error; err != nil {
		return nil, 0, err
	}

	return recipients, total, nil
}

// History returns a recipient's requests, newest first
func (r *recipientRepository) History(ctx context.Context, recipientID uint) ([]*models.RecipientHistoryRow, error) {
	var rows []*models.RecipientHistoryRow
	err := r.db.WithContext(ctx).
		Table("recipients rc").
		Select("rc.full_name, rc.age, rc.blood_group, rq.request_date, rq.blood_group AS requested_blood_group, rq.units, rq.status AS status").
		Joins("JOIN requests rq ON rc.id = rq.recipient_id").
		Where("rc.id = ?", recipientID).
		Order("rq.request_date DESC").
		Scan(&rows).Error
	return rows, err
}

// ExistsByContact checks if a recipient with the contact number exists
func (r *recipientRepository) ExistsByContact(ctx context.Context, contactNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipient{}).Where("contact_number = ?", contactNumber).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if a recipient with the email exists
func (r *recipientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipient{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
