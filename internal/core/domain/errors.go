package domain

import "errors"

// ErrStockNotFound is returned when a (bank, blood group) stock row is
// missing; seeding creates one row per pair, so this signals drift.
var ErrStockNotFound = errors.New("blood stock row not found")
