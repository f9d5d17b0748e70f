package services

import (
	"context"
	"errors"
	"strings"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/core/domain"
	"bloodlink-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// Recipient service errors
var (
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrRecipientDuplicate = errors.New("recipient with this contact or email already exists")
)

// RecipientService handles recipient registration and admin-scoped management
type RecipientService struct {
	recipientRepo repositories.RecipientRepository
	bankRepo      repositories.BankRepository
}

// NewRecipientService creates a new recipient service
func NewRecipientService(recipientRepo repositories.RecipientRepository, bankRepo repositories.BankRepository) *RecipientService {
	return &RecipientService{recipientRepo: recipientRepo, bankRepo: bankRepo}
}

// RegisterRecipientInput is the public registration payload
type RegisterRecipientInput struct {
	FullName      string `json:"fullName"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	BloodGroup    string `json:"bloodGroup"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	BankID        uint   `json:"bankId"`
}

// Register validates and persists a new recipient from public input
func (s *RecipientService) Register(ctx context.Context, input *RegisterRecipientInput) (*models.Recipient, error) {
	if err := validatePerson(input.FullName, input.Age, input.Gender, input.BloodGroup,
		input.ContactNumber, input.Email, input.Address); err != nil {
		return nil, err
	}

	exists, err := s.bankRepo.Exists(ctx, input.BankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBankNotFound
	}

	if dup, err := s.recipientRepo.ExistsByContact(ctx, input.ContactNumber); err != nil {
		return nil, err
	} else if dup {
		return nil, ErrRecipientDuplicate
	}
	if dup, err := s.recipientRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if dup {
		return nil, ErrRecipientDuplicate
	}

	recipient := &models.Recipient{
		FullName:      strings.TrimSpace(input.FullName),
		Age:           input.Age,
		Gender:        input.Gender,
		BloodGroup:    strings.ToUpper(input.BloodGroup),
		ContactNumber: input.ContactNumber,
		Email:         strings.TrimSpace(input.Email),
		Address:       strings.TrimSpace(input.Address),
		BankID:        input.BankID,
	}

	if err := s.recipientRepo.Create(ctx, recipient); err != nil {
		return nil, err
	}

	return recipient, nil
}

// GetByID fetches one recipient
func (s *RecipientService) GetByID(ctx context.Context, id uint) (*models.Recipient, error) {
	recipient, err := s.recipientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	return recipient, nil
}

// ListRecipientsOutput is a paginated recipient listing
type ListRecipientsOutput struct {
	Recipients []*models.Recipient `json:"recipients"`
	Total      int64               `json:"total"`
}

// List lists recipients across all banks (reads are unrestricted)
func (s *RecipientService) List(ctx context.Context, offset, limit int) (*ListRecipientsOutput, error) {
	recipients, total, err := s.recipientRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListRecipientsOutput{Recipients: recipients, Total: total}, nil
}

// History returns a recipient's request history, newest first
func (s *RecipientService) History(ctx context.Context, recipientID uint) ([]*models.RecipientHistoryRow, error) {
	return s.recipientRepo.History(ctx, recipientID)
}

// UpdateRecipientInput carries the mutable recipient fields
type UpdateRecipientInput struct {
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	BankID        uint   `json:"bankId"`
}

// Update edits the mutable recipient fields, scoped to the acting admin's bank
func (s *RecipientService) Update(ctx context.Context, recipientID, actorBankID uint, input *UpdateRecipientInput) (*models.Recipient, error) {
	recipient, err := s.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	if d := domain.CanReassign(actorBankID, recipient.BankID, input.BankID); !d.Permitted {
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

	recipient.ContactNumber = input.ContactNumber
	recipient.Email = strings.TrimSpace(input.Email)
	recipient.Address = strings.TrimSpace(input.Address)
	recipient.BankID = input.BankID

	if err := s.recipientRepo.Update(ctx, recipient); err != nil {
		return nil, err
	}

	return recipient, nil
}

// Delete removes a recipient, scoped to the acting admin's bank
func (s *RecipientService) Delete(ctx context.Context, recipientID, actorBankID uint) error {
	recipient, err := s.GetByID(ctx, recipientID)
	if err != nil {
		return err
	}

	if d := domain.CanMutate(actorBankID, recipient.BankID); !d.Permitted {
		return ErrCrossBankWrite
	}

	return s.recipientRepo.Delete(ctx, recipientID)
}
