package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/core/domain"
	"bloodlink-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// Donation service errors
var (
	ErrAdminNotFound        = errors.New("admin not found")
	ErrDonorBankMismatch    = errors.New("donor does not belong to the admin's bank")
	ErrDonationBankMismatch = errors.New("donation can only target the admin's own bank")
)

// DonationService handles donation recording. A donation insert and its stock
// increment commit in one transaction.
type DonationService struct {
	tx           TxRunner
	donationRepo repositories.DonationRepository
	donorRepo    repositories.DonorRepository
	adminRepo    repositories.AdminRepository
	stockRepo    repositories.StockRepository
}

// NewDonationService creates a new donation service
func NewDonationService(
	tx TxRunner,
	donationRepo repositories.DonationRepository,
	donorRepo repositories.DonorRepository,
	adminRepo repositories.AdminRepository,
	stockRepo repositories.StockRepository,
) *DonationService {
	return &DonationService{
		tx:           tx,
		donationRepo: donationRepo,
		donorRepo:    donorRepo,
		adminRepo:    adminRepo,
		stockRepo:    stockRepo,
	}
}

// AddDonationInput is the add-donation payload. The collecting admin is the
// authenticated actor, never a client-supplied id.
type AddDonationInput struct {
	DonorID      uint    `json:"donorId"`
	BloodGroup   string  `json:"bloodGroup"`
	DonationDate string  `json:"donationDate"`
	Units        float64 `json:"unitsDonated"`
	BankID       uint    `json:"bankId"`
}

// Add records a donation after the tri-party bank match passes:
// donor.bank == admin.bank == donation.bank.
func (s *DonationService) Add(ctx context.Context, actorAdminID uint, input *AddDonationInput) (*models.Donation, error) {
	if !validation.BloodGroup(input.BloodGroup) {
		return nil, validationError("blood group must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	if !validation.Units(input.Units) {
		return nil, validationError("units must be positive in 0.5 increments")
	}

	donationDate, err := time.ParseInLocation("2006-01-02", input.DonationDate, time.Local)
	if err != nil {
		return nil, validationError("donation date must be YYYY-MM-DD")
	}
	if !validation.PastOrToday(donationDate) {
		return nil, validationError("donation date cannot be in the future")
	}

	// Resolve the actor's bank from their admin record, not from the client.
	admin, err := s.adminRepo.GetByID(ctx, actorAdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	donor, err := s.donorRepo.GetByID(ctx, input.DonorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	if d := domain.CheckTriParty(donor.BankID, admin.BankID, input.BankID); !d.Permitted {
		switch d.Reason {
		case domain.ReasonSubjectMismatch:
			return nil, ErrDonorBankMismatch
		default:
			return nil, ErrDonationBankMismatch
		}
	}

	donation := &models.Donation{
		DonorID:      donor.ID,
		BloodGroup:   strings.ToUpper(input.BloodGroup),
		DonationDate: donationDate,
		Units:        input.Units,
		CollectedBy:  admin.ID,
		BankID:       input.BankID,
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.donationRepo.Create(ctx, tx, donation); err != nil {
			return err
		}
		return s.stockRepo.Adjust(ctx, tx, donation.BankID, donation.BloodGroup, donation.Units)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Donation recorded: donor %d, %s %.1f units (bank %d)",
		donation.DonorID, donation.BloodGroup, donation.Units, donation.BankID)

	return donation, nil
}

// ListDonationsOutput is a paginated donation listing
type ListDonationsOutput struct {
	Donations []*models.DonationRow `json:"donations"`
	Total     int64                 `json:"total"`
}

// List lists donations across all banks, join-enriched with donor details
func (s *DonationService) List(ctx context.Context, offset, limit int) (*ListDonationsOutput, error) {
	rows, total, err := s.donationRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListDonationsOutput{Donations: rows, Total: total}, nil
}

// Details returns detail rows for one donation
func (s *DonationService) Details(ctx context.Context, donationID uint) ([]*models.DonorHistoryRow, error) {
	return s.donationRepo.Details(ctx, donationID)
}
