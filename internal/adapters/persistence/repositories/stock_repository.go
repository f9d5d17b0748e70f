package repositories

import (
	"context"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stockRepository implements StockRepository interface
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new blood stock repository
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

// ListWithBank lists stock rows joined with bank details
func (r *stockRepository) ListWithBank(ctx context.Context) ([]*models.StockRow, error) {
	var rows []*models.StockRow
	err := r.db.WithContext(ctx).
		Table("blood_stock s").
		Select("s.blood_group, s.units_available, s.last_updated, b.name AS bank_name, b.id AS bank_id, b.location").
		Joins("JOIN blood_banks b ON s.bank_id = b.id").
		Order("b.id, s.blood_group").
		Scan(&rows).Error
	return rows, err
}

// Get fetches one (bank, group) stock row, locking it when inside a
// transaction so concurrent adjustments serialize on the row.
func (r *stockRepository) Get(ctx context.Context, tx *gorm.DB, bankID uint, bloodGroup string) (*models.BloodStock, error) {
	db := r.db
	if tx != nil {
		db = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var stock models.BloodStock
	err := db.WithContext(ctx).
		Where("bank_id = ? AND blood_group = ?", bankID, bloodGroup).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Adjust applies a delta to a (bank, group) stock row. A zero-row update
// means the row is missing and the caller's transaction must not commit.
func (r *stockRepository) Adjust(ctx context.Context, tx *gorm.DB, bankID uint, bloodGroup string, delta float64) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	result := db.WithContext(ctx).Model(&models.BloodStock{}).
		Where("bank_id = ? AND blood_group = ?", bankID, bloodGroup).
		Updates(map[string]interface{}{
			"units_available": gorm.Expr("units_available + ?", delta),
			"last_updated":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

// Set overwrites a (bank, group) stock row, used by reconciliation
func (r *stockRepository) Set(ctx context.Context, bankID uint, bloodGroup string, units float64) error {
	return r.db.WithContext(ctx).Model(&models.BloodStock{}).
		Where("bank_id = ? AND blood_group = ?", bankID, bloodGroup).
		Updates(map[string]interface{}{
			"units_available": units,
			"last_updated":    time.Now(),
		}).Error
}
