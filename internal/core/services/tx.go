package services

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner runs a function inside one store transaction so multi-row writes
// commit or roll back together. Services depend on this seam instead of a
// bare gorm handle.
type TxRunner interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner wraps a gorm handle as a TxRunner.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
