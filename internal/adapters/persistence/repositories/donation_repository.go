package repositories

import (
	"context"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create inserts a donation. When tx is non-nil the insert joins the caller's
// transaction so it commits atomically with the stock adjustment.
func (r *donationRepository) Create(ctx context.Context, tx *gorm.DB, donation *models.Donation) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(donation).Error
}

// List lists donations joined with donor details, newest first
func (r *donationRepository) List(ctx context.Context, offset, limit int) ([]*models.DonationRow, int64, error) {
	var rows []*models.DonationRow
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Table("donations dn").
		Select("dn.id AS donation_id, dn.donor_id, d.full_name, d.blood_group, dn.donation_date, dn.units, dn.bank_id, dn.collected_by").
		Joins("JOIN donors d ON dn.donor_id = d.id").
		Order("dn.donation_date DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Details returns donor + units detail rows for one donation
func (r *donationRepository) Details(ctx context.Context, donationID uint) ([]*models.DonorHistoryRow, error) {
	var rows []*models.DonorHistoryRow
	err := r.db.WithContext(ctx).
		Table("donations dn").
		Select("d.full_name, d.age, d.blood_group, dn.donation_date, dn.units").
		Joins("JOIN donors d ON dn.donor_id = d.id").
		Where("dn.id = ?", donationID).
		Scan(&rows).Error
	return rows, err
}

// SumUnitsSince totals donated units for a (bank, group) pair, used by the
// stock reconciliation job.
func (r *donationRepository) SumUnitsSince(ctx context.Context, bankID uint, bloodGroup string, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Select("COALESCE(SUM(units), 0)").
		Where("bank_id = ? AND blood_group = ? AND donation_date >= ?", bankID, bloodGroup, since).
		Scan(&total).Error
	return total, err
}
