package services

import (
	"context"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
)

// StockService serves the blood stock views. Stock rows are only mutated by
// the donation/request services and the reconciliation job.
type StockService struct {
	stockRepo repositories.StockRepository
}

// NewStockService creates a new stock service
func NewStockService(stockRepo repositories.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// ListWithBank returns stock rows joined with bank name and location, the
// public /bloodstock view.
func (s *StockService) ListWithBank(ctx context.Context) ([]*models.StockRow, error) {
	return s.stockRepo.ListWithBank(ctx)
}
