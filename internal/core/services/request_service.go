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

// Request service errors
var (
	ErrRequestNotFound        = errors.New("request not found")
	ErrRecipientBankMismatch  = errors.New("recipient does not belong to the admin's bank")
	ErrRequestBankMismatch    = errors.New("request can only target the admin's own bank")
	ErrRequestTransition      = errors.New("invalid request status transition")
	ErrRequestStatusUnknown   = errors.New("unknown request status")
	ErrInsufficientStock      = errors.New("insufficient blood stock to complete the request")
	ErrConcurrentStatusChange = errors.New("request status changed concurrently")
)

// RequestService handles blood request creation and its lifecycle. Requests
// always start Pending; the only legal transitions are Pending -> Completed
// (decrementing stock) and Pending -> Rejected.
type RequestService struct {
	tx            TxRunner
	requestRepo   repositories.RequestRepository
	recipientRepo repositories.RecipientRepository
	adminRepo     repositories.AdminRepository
	stockRepo     repositories.StockRepository
}

// NewRequestService creates a new request service
func NewRequestService(
	tx TxRunner,
	requestRepo repositories.RequestRepository,
	recipientRepo repositories.RecipientRepository,
	adminRepo repositories.AdminRepository,
	stockRepo repositories.StockRepository,
) *RequestService {
	return &RequestService{
		tx:            tx,
		requestRepo:   requestRepo,
		recipientRepo: recipientRepo,
		adminRepo:     adminRepo,
		stockRepo:     stockRepo,
	}
}

// AddRequestInput is the add-request payload. The fulfilling admin is the
// authenticated actor and the initial status is always Pending, regardless of
// what the client sends.
type AddRequestInput struct {
	RecipientID uint    `json:"recipientId"`
	BloodGroup  string  `json:"bloodGroup"`
	RequestDate string  `json:"requestDate"`
	Units       float64 `json:"unitsRequested"`
	BankID      uint    `json:"bankId"`
}

// Add creates a request after the tri-party bank match passes:
// recipient.bank == admin.bank == request.bank.
func (s *RequestService) Add(ctx context.Context, actorAdminID uint, input *AddRequestInput) (*models.Request, error) {
	if !validation.BloodGroup(input.BloodGroup) {
		return nil, validationError("blood group must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	if !validation.Units(input.Units) {
		return nil, validationError("units must be positive in 0.5 increments")
	}

	requestDate, err := time.ParseInLocation("2006-01-02", input.RequestDate, time.Local)
	if err != nil {
		return nil, validationError("request date must be YYYY-MM-DD")
	}

	admin, err := s.adminRepo.GetByID(ctx, actorAdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	recipient, err := s.recipientRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if d := domain.CheckTriParty(recipient.BankID, admin.BankID, input.BankID); !d.Permitted {
		switch d.Reason {
		case domain.ReasonSubjectMismatch:
			return nil, ErrRecipientBankMismatch
		default:
			return nil, ErrRequestBankMismatch
		}
	}

	request := &models.Request{
		RecipientID: recipient.ID,
		BloodGroup:  strings.ToUpper(input.BloodGroup),
		RequestDate: requestDate,
		Units:       input.Units,
		Status:      string(domain.StatusPending),
		FulfilledBy: admin.ID,
		BankID:      input.BankID,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("✅ Request created: recipient %d, %s %.1f units (bank %d)",
		request.RecipientID, request.BloodGroup, request.Units, request.BankID)

	return request, nil
}

// UpdateStatus applies a lifecycle transition, scoped to the acting admin's
// bank. Completing a request decrements the bank's stock in the same
// transaction and fails when not enough units are available.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID, actorAdminID uint, rawStatus string) (*models.Request, error) {
	next, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, ErrRequestStatusUnknown
	}

	admin, err := s.adminRepo.GetByID(ctx, actorAdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if d := domain.CanMutate(admin.BankID, request.BankID); !d.Permitted {
		return nil, ErrRequestBankMismatch
	}

	current := domain.RequestStatus(request.Status)
	if _, err := domain.Transition(current, next); err != nil {
		return nil, ErrRequestTransition
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if next == domain.StatusCompleted {
			stock, err := s.stockRepo.Get(ctx, tx, request.BankID, request.BloodGroup)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrStockNotFound
				}
				return err
			}
			if stock.UnitsAvailable < request.Units {
				return ErrInsufficientStock
			}
			if err := s.stockRepo.Adjust(ctx, tx, request.BankID, request.BloodGroup, -request.Units); err != nil {
				return err
			}
		}

		// Guarded write: only flips the row if it is still Pending.
		affected, err := s.requestRepo.UpdateStatus(ctx, tx, request.ID, string(current), string(next))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConcurrentStatusChange
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = string(next)

	log.Printf("✅ Request %d: %s -> %s (bank %d)", request.ID, current, next, request.BankID)

	return request, nil
}

// ListRequestsOutput is a paginated request listing
type ListRequestsOutput struct {
	Requests []*models.RequestRow `json:"requests"`
	Total    int64                `json:"total"`
}

// List lists requests across all banks, join-enriched with recipient details
func (s *RequestService) List(ctx context.Context, offset, limit int) (*ListRequestsOutput, error) {
	rows, total, err := s.requestRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListRequestsOutput{Requests: rows, Total: total}, nil
}

// Details returns detail rows for one request
func (s *RequestService) Details(ctx context.Context, requestID uint) ([]*models.RecipientHistoryRow, error) {
	return s.requestRepo.Details(ctx, requestID)
}
