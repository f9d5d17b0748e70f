package services

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates the counters shown on the admin dashboard
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary holds the dashboard counters
type Summary struct {
	Donors          int64   `json:"donors"`
	Recipients      int64   `json:"recipients"`
	Donations       int64   `json:"donations"`
	Requests        int64   `json:"requests"`
	PendingRequests int64   `json:"pending_requests"`
	Admins          int64   `json:"admins"`
	Banks           int64   `json:"banks"`
	TotalStockUnits float64 `json:"total_stock_units"`
}

// GetSummary collects entity counts across all banks. Dashboards read
// everything; scoping only applies to writes.
func (s *DashboardService) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Donor{}, &summary.Donors},
		{&models.Recipient{}, &summary.Recipients},
		{&models.Donation{}, &summary.Donations},
		{&models.Request{}, &summary.Requests},
		{&models.Admin{}, &summary.Admins},
		{&models.Bank{}, &summary.Banks},
	}

	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Model(&models.Request{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&summary.PendingRequests).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.BloodStock{}).
		Select("COALESCE(SUM(units_available), 0)").
		Scan(&summary.TotalStockUnits).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
