package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/core/domain"

	"gorm.io/gorm"
)

// fakeTxRunner runs the callback directly. Fake repositories ignore the tx
// handle, so there is nothing to roll back on error.
type fakeTxRunner struct{}

func (fakeTxRunner) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stockKey struct {
	bankID uint
	group  string
}

type fakeStockRepo struct {
	units map[stockKey]float64
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{units: make(map[stockKey]float64)}
}

func (r *fakeStockRepo) set(bankID uint, group string, units float64) *fakeStockRepo {
	r.units[stockKey{bankID, group}] = units
	return r
}

func (r *fakeStockRepo) ListWithBank(_ context.Context) ([]*models.StockRow, error) {
	return nil, nil
}

func (r *fakeStockRepo) Get(_ context.Context, _ *gorm.DB, bankID uint, group string) (*models.BloodStock, error) {
	units, ok := r.units[stockKey{bankID, group}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.BloodStock{BankID: bankID, BloodGroup: group, UnitsAvailable: units}, nil
}

func (r *fakeStockRepo) Adjust(_ context.Context, _ *gorm.DB, bankID uint, group string, delta float64) error {
	key := stockKey{bankID, group}
	if _, ok := r.units[key]; !ok {
		return domain.ErrStockNotFound
	}
	r.units[key] += delta
	return nil
}

func (r *fakeStockRepo) Set(_ context.Context, bankID uint, group string, units float64) error {
	r.units[stockKey{bankID, group}] = units
	return nil
}

type fakeDonationRepo struct {
	created []*models.Donation
	nextID  uint
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{nextID: 1}
}

func (r *fakeDonationRepo) Create(_ context.Context, _ *gorm.DB, donation *models.Donation) error {
	donation.ID = r.nextID
	r.nextID++
	r.created = append(r.created, donation)
	return nil
}

func (r *fakeDonationRepo) List(_ context.Context, _, _ int) ([]*models.DonationRow, int64, error) {
	return nil, 0, nil
}

func (r *fakeDonationRepo) Details(_ context.Context, _ uint) ([]*models.DonorHistoryRow, error) {
	return nil, nil
}

func (r *fakeDonationRepo) SumUnitsSince(_ context.Context, _ uint, _ string, _ time.Time) (float64, error) {
	return 0, nil
}

func validAddDonationInput() *AddDonationInput {
	return &AddDonationInput{
		DonorID:      1,
		BloodGroup:   "o+",
		DonationDate: time.Now().Format("2006-01-02"),
		Units:        2,
		BankID:       1,
	}
}

func TestDonationAdd(t *testing.T) {
	donor := func(bankID uint) *fakeDonorRepo {
		return newFakeDonorRepo(&models.Donor{ID: 1, BloodGroup: "O+", BankID: bankID})
	}
	admin := func(bankID uint) *fakeAdminRepo {
		return newFakeAdminRepo(&models.Admin{ID: 1, Username: "collector1", BankID: bankID})
	}

	t.Run("valid donation commits and increments stock", func(t *testing.T) {
		donations := newFakeDonationRepo()
		stock := newFakeStockRepo().set(1, "O+", 5)
		svc := NewDonationService(fakeTxRunner{}, donations, donor(1), admin(1), stock)

		donation, err := svc.Add(context.Background(), 1, validAddDonationInput())
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if donation.BloodGroup != "O+" {
			t.Errorf("BloodGroup = %s, want O+ (uppercased)", donation.BloodGroup)
		}
		if donation.CollectedBy != 1 {
			t.Errorf("CollectedBy = %d, want the acting admin", donation.CollectedBy)
		}
		if len(donations.created) != 1 {
			t.Fatalf("created %d donations, want 1", len(donations.created))
		}
		if got := stock.units[stockKey{1, "O+"}]; got != 7 {
			t.Errorf("stock after donation = %.1f, want 7.0", got)
		}
	})

	t.Run("donor from another bank denied", func(t *testing.T) {
		donations := newFakeDonationRepo()
		stock := newFakeStockRepo().set(1, "O+", 5)
		svc := NewDonationService(fakeTxRunner{}, donations, donor(2), admin(1), stock)

		if _, err := svc.Add(context.Background(), 1, validAddDonationInput()); !errors.Is(err, ErrDonorBankMismatch) {
			t.Errorf("error = %v, want ErrDonorBankMismatch", err)
		}
		if len(donations.created) != 0 {
			t.Errorf("created %d donations, want none", len(donations.created))
		}
		if got := stock.units[stockKey{1, "O+"}]; got != 5 {
			t.Errorf("stock = %.1f, want untouched 5.0", got)
		}
	})

	t.Run("donation targeting another bank denied", func(t *testing.T) {
		donations := newFakeDonationRepo()
		svc := NewDonationService(fakeTxRunner{}, donations, donor(1), admin(1), newFakeStockRepo())

		input := validAddDonationInput()
		input.BankID = 2
		if _, err := svc.Add(context.Background(), 1, input); !errors.Is(err, ErrDonationBankMismatch) {
			t.Errorf("error = %v, want ErrDonationBankMismatch", err)
		}
		if len(donations.created) != 0 {
			t.Errorf("created %d donations, want none", len(donations.created))
		}
	})

	t.Run("missing stock row surfaces", func(t *testing.T) {
		svc := NewDonationService(fakeTxRunner{}, newFakeDonationRepo(), donor(1), admin(1), newFakeStockRepo())

		if _, err := svc.Add(context.Background(), 1, validAddDonationInput()); !errors.Is(err, domain.ErrStockNotFound) {
			t.Errorf("error = %v, want domain.ErrStockNotFound", err)
		}
	})

	t.Run("unknown acting admin", func(t *testing.T) {
		svc := NewDonationService(fakeTxRunner{}, newFakeDonationRepo(), donor(1), newFakeAdminRepo(), newFakeStockRepo())

		if _, err := svc.Add(context.Background(), 1, validAddDonationInput()); !errors.Is(err, ErrAdminNotFound) {
			t.Errorf("error = %v, want ErrAdminNotFound", err)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		mutations := map[string]func(*AddDonationInput){
			"bad blood group": func(in *AddDonationInput) { in.BloodGroup = "C+" },
			"zero units":      func(in *AddDonationInput) { in.Units = 0 },
			"off-step units":  func(in *AddDonationInput) { in.Units = 1.3 },
			"bad date":        func(in *AddDonationInput) { in.DonationDate = "31-12-2025" },
			"future date": func(in *AddDonationInput) {
				in.DonationDate = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
			},
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				svc := NewDonationService(fakeTxRunner{}, newFakeDonationRepo(), donor(1), admin(1), newFakeStockRepo())
				input := validAddDonationInput()
				mutate(input)
				if _, err := svc.Add(context.Background(), 1, input); !errors.Is(err, ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
			})
		}
	})
}
