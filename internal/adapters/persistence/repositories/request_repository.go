package repositories

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create creates a new request
func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets a request by ID
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateStatus flips the status only when the stored value still matches
// `from`, so a concurrent transition cannot be applied twice. Returns the
// number of rows changed; 0 means the guard did not match.
func (r *requestRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, from, to string) (int64, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	result := db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// List lists requests joined with recipient details, newest first
func (r *requestRepository) List(ctx context.Context, offset, limit int) ([]*models.RequestRow, int64, error) {
	var rows []*models.RequestRow
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Request{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Table("requests rq").
		Select("rq.id AS request_id, rq.recipient_id, rc.full_name, rq.blood_group AS requested_blood_group, rq.request_date, rq.units, rq.bank_id, rq.status AS status, rq.fulfilled_by").
		Joins("JOIN recipients rc ON rq.recipient_id = rc.id").
		Order("rq.request_date DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Details returns recipient + request detail rows for one request
func (r *requestRepository) Details(ctx context.Context, requestID uint) ([]*models.RecipientHistoryRow, error) {
	var rows []*models.RecipientHistoryRow
	err := r.db.WithContext(ctx).
		Table("requests rq").
		Select("rc.full_name, rc.age, rc.blood_group, rq.request_date, rq.blood_group AS requested_blood_group, rq.units, rq.status AS status").
		Joins("JOIN recipients rc ON rq.recipient_id = rc.id").
		Where("rq.id = ?", requestID).
		Scan(&rows).Error
	return rows, err
}

// SumCompletedUnits totals the units of completed requests for a
// (bank, group) pair, used by the stock reconciliation job.
func (r *requestRepository) SumCompletedUnits(ctx context.Context, bankID uint, bloodGroup string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Select("COALESCE(SUM(units), 0)").
		Where("bank_id = ? AND blood_group = ? AND status = ?", bankID, bloodGroup, "Completed").
		Scan(&total).Error
	return total, err
}
