package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/core/domain"
	"bloodlink-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// Donor service errors
var (
	ErrDonorNotFound    = errors.New("donor not found")
	ErrBankNotFound     = errors.New("bank not found")
	ErrDonorDuplicate   = errors.New("donor with this contact or email already exists")
	ErrCrossBankWrite   = errors.New("entity belongs to a different bank")
	ErrBankReassignment = errors.New("cannot reassign entity to another bank")
	ErrValidation       = errors.New("validation failed")
)

// validationError wraps ErrValidation with a field-specific message.
func validationError(msg string) error {
	return &fieldError{msg: msg}
}

type fieldError struct {
	msg string
}

func (e *fieldError) Error() string { return e.msg }

func (e *fieldError) Is(target error) bool { return target == ErrValidation }

// DonorService handles donor registration and admin-scoped management
type DonorService struct {
	donorRepo repositories.DonorRepository
	bankRepo  repositories.BankRepository
}

// NewDonorService creates a new donor service
func NewDonorService(donorRepo repositories.DonorRepository, bankRepo repositories.BankRepository) *DonorService {
	return &DonorService{donorRepo: donorRepo, bankRepo: bankRepo}
}

// RegisterDonorInput is the public registration payload
type RegisterDonorInput struct {
	FullName         string  `json:"fullName"`
	Age              int     `json:"age"`
	Gender           string  `json:"gender"`
	BloodGroup       string  `json:"bloodGroup"`
	ContactNumber    string  `json:"contactNumber"`
	Email            string  `json:"email"`
	Address          string  `json:"address"`
	LastDonationDate *string `json:"lastDonationDate"`
	BankID           uint    `json:"bankId"`
}

// Register validates and persists a new donor from public input
func (s *DonorService) Register(ctx context.Context, input *RegisterDonorInput) (*models.Donor, error) {
	if err := validatePerson(input.FullName, input.Age, input.Gender, input.BloodGroup,
		input.ContactNumber, input.Email, input.Address); err != nil {
		return nil, err
	}

	var lastDonation *time.Time
	if input.LastDonationDate != nil && *input.LastDonationDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *input.LastDonationDate, time.Local)
		if err != nil {
			return nil, validationError("last donation date must be YYYY-MM-DD")
		}
		if !validation.PastOrToday(parsed) {
			return nil, validationError("last donation date cannot be in the future")
		}
		lastDonation = &parsed
	}

	exists, err := s.bankRepo.Exists(ctx, input.BankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBankNotFound
	}

	if dup, err := s.donorRepo.ExistsByContact(ctx, input.ContactNumber); err != nil {
		return nil, err
	} else if dup {
		return nil, ErrDonorDuplicate
	}
	if dup, err := s.donorRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if dup {
		return nil, ErrDonorDuplicate
	}

	donor := &models.Donor{
		FullName:         strings.TrimSpace(input.FullName),
		Age:              input.Age,
		Gender:           input.Gender,
		BloodGroup:       strings.ToUpper(input.BloodGroup),
		ContactNumber:    input.ContactNumber,
		Email:            strings.TrimSpace(input.Email),
		Address:          strings.TrimSpace(input.Address),
		LastDonationDate: lastDonation,
		BankID:           input.BankID,
	}

	if err := s.donorRepo.Create(ctx, donor); err != nil {
		return nil, err
	}

	return donor, nil
}

// GetByID fetches one donor
func (s *DonorService) GetByID(ctx context.Context, id uint) (*models.Donor, error) {
	donor, err := s.donorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return donor, nil
}

// ListDonorsOutput is a paginated donor listing
type ListDonorsOutput struct {
	Donors []*models.Donor `json:"donors"`
	Total  int64           `json:"total"`
}

// List lists donors across all banks (reads are unrestricted)
func (s *DonorService) List(ctx context.Context, offset, limit int) (*ListDonorsOutput, error) {
	donors, total, err := s.donorRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListDonorsOutput{Donors: donors, Total: total}, nil
}

// History returns a donor's donation history, newest first
func (s *DonorService) History(ctx context.Context, donorID uint) ([]*models.DonorHistoryRow, error) {
	return s.donorRepo.History(ctx, donorID)
}

// UpdateDonorInput carries the mutable donor fields
type UpdateDonorInput struct {
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	BankID        uint   `json:"bankId"`
}

// Update edits the mutable donor fields, scoped to the acting admin's bank.
// Name, age, gender and blood group are never writable through this path.
func (s *DonorService) Update(ctx context.Context, donorID, actorBankID uint, input *UpdateDonorInput) (*models.Donor, error) {
	donor, err := s.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if d := domain.CanReassign(actorBankID, donor.BankID, input.BankID); !d.Permitted {
		if d.Reason == domain.ReasonBankReassignment {
			return nil, ErrBankReassignment
		}
		return nil, ErrCrossBankWrite
	}

	if !validation.Phone(input.ContactNumber) {
		return nil, validationError("contact number must be exactly 10 digits")
	}
	if !validation.Email(input.Email) {
		return nil, validationError("invalid email address")
	}
	if !validation.Address(input.Address) {
		return nil, validationError("address must be 10-200 characters")
	}

	donor.ContactNumber = input.ContactNumber
	donor.Email = strings.TrimSpace(input.Email)
	donor.Address = strings.TrimSpace(input.Address)
	donor.BankID = input.BankID

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		return nil, err
	}

	return donor, nil
}

// Delete removes a donor, scoped to the acting admin's bank
func (s *DonorService) Delete(ctx context.Context, donorID, actorBankID uint) error {
	donor, err := s.GetByID(ctx, donorID)
	if err != nil {
		return err
	}

	if d := domain.CanMutate(actorBankID, donor.BankID); !d.Permitted {
		return ErrCrossBankWrite
	}

	return s.donorRepo.Delete(ctx, donorID)
}

// validatePerson checks the fields shared by donors and recipients.
func validatePerson(fullName string, age int, gender, bloodGroup, contactNumber, email, address string) error {
	if !validation.FullName(fullName) {
		return validationError("full name must be 2-100 letters, spaces, dots, apostrophes or hyphens")
	}
	if !validation.Age(age) {
		return validationError("age must be between 18 and 65")
	}
	if !validation.Gender(gender) {
		return validationError("gender must be Male, Female or Other")
	}
	if !validation.BloodGroup(bloodGroup) {
		return validationError("blood group must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	if !validation.Phone(contactNumber) {
		return validationError("contact number must be exactly 10 digits")
	}
	if !validation.Email(email) {
		return validationError("invalid email address")
	}
	if !validation.Address(address) {
		return validationError("address must be 10-200 characters")
	}
	return nil
}
