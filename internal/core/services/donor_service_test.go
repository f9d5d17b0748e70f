package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type fakeDonorRepo struct {
	donors  map[uint]*models.Donor
	nextID  uint
	deleted []uint
}

func newFakeDonorRepo(donors ...*models.Donor) *fakeDonorRepo {
	r := &fakeDonorRepo{donors: make(map[uint]*models.Donor), nextID: 1}
	for _, d := range donors {
		r.donors[d.ID] = d
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
	}
	return r
}

func (r *fakeDonorRepo) Create(_ context.Context, donor *models.Donor) error {
	donor.ID = r.nextID
	r.nextID++
	r.donors[donor.ID] = donor
	return nil
}

func (r *fakeDonorRepo) GetByID(_ context.Context, id uint) (*models.Donor, error) {
	donor, ok := r.donors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return donor, nil
}

func (r *fakeDonorRepo) Update(_ context.Context, donor *models.Donor) error {
	r.donors[donor.ID] = donor
	return nil
}

func (r *fakeDonorRepo) Delete(_ context.Context, id uint) error {
	delete(r.donors, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeDonorRepo) List(_ context.Context, _, _ int) ([]*models.Donor, int64, error) {
	out := make([]*models.Donor, 0, len(r.donors))
	for _, d := range r.donors {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDonorRepo) History(_ context.Context, _ uint) ([]*models.DonorHistoryRow, error) {
	return nil, nil
}

func (r *fakeDonorRepo) ExistsByContact(_ context.Context, contact string) (bool, error) {
	for _, d := range r.donors {
		if d.ContactNumber == contact {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDonorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, d := range r.donors {
		if d.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeBankRepo struct {
	banks map[uint]*models.Bank
}

func newFakeBankRepo(ids ...uint) *fakeBankRepo {
	r := &fakeBankRepo{banks: make(map[uint]*models.Bank)}
	for _, id := range ids {
		r.banks[id] = &models.Bank{ID: id}
	}
	return r
}

func (r *fakeBankRepo) List(_ context.Context) ([]*models.Bank, error) {
	out := make([]*models.Bank, 0, len(r.banks))
	for _, b := range r.banks {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBankRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.banks[id]
	return ok, nil
}

func validRegisterInput() *RegisterDonorInput {
	return &RegisterDonorInput{
		FullName:      "Jordan Smith",
		Age:           30,
		Gender:        "Male",
		BloodGroup:    "O+",
		ContactNumber: "5550001234",
		Email:         "jordan@example.org",
		Address:       "12 Long Street, Springfield",
		BankID:        1,
	}
}

func TestDonorRegister(t *testing.T) {
	t.Run("valid input creates donor", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(), newFakeBankRepo(1))

		donor, err := svc.Register(context.Background(), validRegisterInput())
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if donor.ID == 0 {
			t.Error("donor ID not assigned")
		}
		if donor.BankID != 1 {
			t.Errorf("BankID = %d, want 1", donor.BankID)
		}
	})

	t.Run("unknown bank rejected", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(), newFakeBankRepo(1))

		input := validRegisterInput()
		input.BankID = 99
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrBankNotFound) {
			t.Errorf("error = %v, want ErrBankNotFound", err)
		}
	})

	t.Run("duplicate contact rejected", func(t *testing.T) {
		existing := &models.Donor{ID: 1, ContactNumber: "5550001234", Email: "other@example.org", BankID: 1}
		svc := NewDonorService(newFakeDonorRepo(existing), newFakeBankRepo(1))

		if _, err := svc.Register(context.Background(), validRegisterInput()); !errors.Is(err, ErrDonorDuplicate) {
			t.Errorf("error = %v, want ErrDonorDuplicate", err)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		mutations := map[string]func(*RegisterDonorInput){
			"bad name":        func(in *RegisterDonorInput) { in.FullName = "X" },
			"underage":        func(in *RegisterDonorInput) { in.Age = 17 },
			"bad gender":      func(in *RegisterDonorInput) { in.Gender = "Unknown" },
			"bad blood group": func(in *RegisterDonorInput) { in.BloodGroup = "C+" },
			"short phone":     func(in *RegisterDonorInput) { in.ContactNumber = "12345" },
			"bad email":       func(in *RegisterDonorInput) { in.Email = "not-an-email" },
			"short address":   func(in *RegisterDonorInput) { in.Address = "short" },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				svc := NewDonorService(newFakeDonorRepo(), newFakeBankRepo(1))
				input := validRegisterInput()
				mutate(input)
				if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
			})
		}
	})

	t.Run("future last donation date rejected", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(), newFakeBankRepo(1))

		future := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
		input := validRegisterInput()
		input.LastDonationDate = &future
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}

func TestDonorUpdateScoping(t *testing.T) {
	donor := func() *models.Donor {
		return &models.Donor{
			ID: 1, FullName: "Jordan Smith", ContactNumber: "5550001234",
			Email: "jordan@example.org", Address: "12 Long Street, Springfield", BankID: 1,
		}
	}
	input := &UpdateDonorInput{
		ContactNumber: "5550009999",
		Email:         "jordan.new@example.org",
		Address:       "99 Short Avenue, Springfield",
		BankID:        1,
	}

	t.Run("same bank permitted", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(donor()), newFakeBankRepo(1, 2))

		updated, err := svc.Update(context.Background(), 1, 1, input)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.ContactNumber != "5550009999" {
			t.Errorf("ContactNumber = %s, want 5550009999", updated.ContactNumber)
		}
	})

	t.Run("cross-bank admin denied", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(donor()), newFakeBankRepo(1, 2))

		if _, err := svc.Update(context.Background(), 1, 2, input); !errors.Is(err, ErrCrossBankWrite) {
			t.Errorf("error = %v, want ErrCrossBankWrite", err)
		}
	})

	t.Run("bank reassignment denied", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(donor()), newFakeBankRepo(1, 2))

		moved := *input
		moved.BankID = 2
		if _, err := svc.Update(context.Background(), 1, 1, &moved); !errors.Is(err, ErrBankReassignment) {
			t.Errorf("error = %v, want ErrBankReassignment", err)
		}
	})

	t.Run("unknown donor", func(t *testing.T) {
		svc := NewDonorService(newFakeDonorRepo(), newFakeBankRepo(1))

		if _, err := svc.Update(context.Background(), 42, 1, input); !errors.Is(err, ErrDonorNotFound) {
			t.Errorf("error = %v, want ErrDonorNotFound", err)
		}
	})
}

func TestDonorDeleteScoping(t *testing.T) {
	t.Run("same bank permitted", func(t *testing.T) {
		repo := newFakeDonorRepo(&models.Donor{ID: 1, BankID: 1})
		svc := NewDonorService(repo, newFakeBankRepo(1))

		if err := svc.Delete(context.Background(), 1, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != 1 {
			t.Errorf("deleted = %v, want [1]", repo.deleted)
		}
	})

	t.Run("cross-bank admin denied", func(t *testing.T) {
		repo := newFakeDonorRepo(&models.Donor{ID: 1, BankID: 1})
		svc := NewDonorService(repo, newFakeBankRepo(1, 2))

		if err := svc.Delete(context.Background(), 1, 2); !errors.Is(err, ErrCrossBankWrite) {
			t.Errorf("error = %v, want ErrCrossBankWrite", err)
		}
		if len(repo.deleted) != 0 {
			t.Errorf("deleted = %v, want none", repo.deleted)
		}
	})
}
