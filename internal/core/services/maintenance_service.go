package services

import (
	"context"
	"log"
	"time"

	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/pkg/validation"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs the scheduled housekeeping jobs: purging dead
// refresh tokens and reconciling the blood stock table against the
// donation/request ledger, which heals any drift left by failed writes.
type MaintenanceService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	donationRepo     repositories.DonationRepository
	requestRepo      repositories.RequestRepository
	stockRepo        repositories.StockRepository
	bankRepo         repositories.BankRepository
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	donationRepo repositories.DonationRepository,
	requestRepo repositories.RequestRepository,
	stockRepo repositories.StockRepository,
	bankRepo repositories.BankRepository,
) *MaintenanceService {
	return &MaintenanceService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		donationRepo:     donationRepo,
		requestRepo:      requestRepo,
		stockRepo:        stockRepo,
		bankRepo:         bankRepo,
	}
}

// Start registers and launches the scheduled jobs (03:00 daily)
func (s *MaintenanceService) Start() {
	s.cron.AddFunc("0 3 * * *", s.purgeRefreshTokens)
	s.cron.AddFunc("30 3 * * *", s.reconcileStock)
	s.cron.Start()
	log.Println("🚀 Maintenance jobs scheduled (03:00 token purge, 03:30 stock reconciliation)")
}

// Stop stops the scheduler
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Maintenance jobs stopped")
}

func (s *MaintenanceService) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
		return
	}
	log.Printf("✅ Refresh token purge removed %d rows", removed)
}

// reconcileStock recomputes units_available per (bank, group) as
// donated - completed, the ledger being the source of truth.
func (s *MaintenanceService) reconcileStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	banks, err := s.bankRepo.List(ctx)
	if err != nil {
		log.Printf("❌ Stock reconciliation failed to list banks: %v", err)
		return
	}

	for _, bank := range banks {
		for _, group := range validation.BloodGroups {
			donated, err := s.donationRepo.SumUnitsSince(ctx, bank.ID, group, time.Time{})
			if err != nil {
				log.Printf("❌ Stock reconciliation (bank %d, %s): %v", bank.ID, group, err)
				continue
			}
			completed, err := s.requestRepo.SumCompletedUnits(ctx, bank.ID, group)
			if err != nil {
				log.Printf("❌ Stock reconciliation (bank %d, %s): %v", bank.ID, group, err)
				continue
			}

			units := donated - completed
			if units < 0 {
				units = 0
			}
			if err := s.stockRepo.Set(ctx, bank.ID, group, units); err != nil {
				log.Printf("❌ Stock reconciliation write (bank %d, %s): %v", bank.ID, group, err)
			}
		}
	}

	log.Println("✅ Stock reconciliation completed")
}
