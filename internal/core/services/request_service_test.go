package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type fakeRecipientRepo struct {
	recipients map[uint]*models.Recipient
	nextID     uint
}

func newFakeRecipientRepo(recipients ...*models.Recipient) *fakeRecipientRepo {
	r := &fakeRecipientRepo{recipients: make(map[uint]*models.Recipient), nextID: 1}
	for _, rec := range recipients {
		r.recipients[rec.ID] = rec
		if rec.ID >= r.nextID {
			r.nextID = rec.ID + 1
		}
	}
	return r
}

func (r *fakeRecipientRepo) Create(_ context.Context, recipient *models.Recipient) error {
	recipient.ID = r.nextID
	r.nextID++
	r.recipients[recipient.ID] = recipient
	return nil
}

func (r *fakeRecipientRepo) GetByID(_ context.Context, id uint) (*models.Recipient, error) {
	recipient, ok := r.recipients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipient, nil
}

func (r *fakeRecipientRepo) Update(_ context.Context, recipient *models.Recipient) error {
	r.recipients[recipient.ID] = recipient
	return nil
}

func (r *fakeRecipientRepo) Delete(_ context.Context, id uint) error {
	delete(r.recipients, id)
	return nil
}

func (r *fakeRecipientRepo) List(_ context.Context, _, _ int) ([]*models.Recipient, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecipientRepo) History(_ context.Context, _ uint) ([]*models.RecipientHistoryRow, error) {
	return nil, nil
}

func (r *fakeRecipientRepo) ExistsByContact(_ context.Context, contact string) (bool, error) {
	for _, rec := range r.recipients {
		if rec.ContactNumber == contact {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRecipientRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, rec := range r.recipients {
		if rec.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo struct {
	requests map[uint]*models.Request
	nextID   uint
	// raceStatus, when set, flips the stored row to that status right after
	// a read, simulating another admin's write landing first.
	raceStatus string
}

func newFakeRequestRepo(requests ...*models.Request) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: make(map[uint]*models.Request), nextID: 1}
	for _, req := range requests {
		r.requests[req.ID] = req
		if req.ID >= r.nextID {
			r.nextID = req.ID + 1
		}
	}
	return r
}

func (r *fakeRequestRepo) Create(_ context.Context, request *models.Request) error {
	request.ID = r.nextID
	r.nextID++
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id uint) (*models.Request, error) {
	stored, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	read := *stored
	if r.raceStatus != "" {
		stored.Status = r.raceStatus
	}
	return &read, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uint, from, to string) (int64, error) {
	stored, ok := r.requests[id]
	if !ok || stored.Status != from {
		return 0, nil
	}
	stored.Status = to
	return 1, nil
}

func (r *fakeRequestRepo) List(_ context.Context, _, _ int) ([]*models.RequestRow, int64, error) {
	return nil, 0, nil
}

func (r *fakeRequestRepo) Details(_ context.Context, _ uint) ([]*models.RecipientHistoryRow, error) {
	return nil, nil
}

func (r *fakeRequestRepo) SumCompletedUnits(_ context.Context, _ uint, _ string) (float64, error) {
	return 0, nil
}

func TestRequestAdd(t *testing.T) {
	admin := func(bankID uint) *fakeAdminRepo {
		return newFakeAdminRepo(&models.Admin{ID: 1, Username: "fulfiller1", BankID: bankID})
	}
	input := func() *AddRequestInput {
		return &AddRequestInput{
			RecipientID: 1,
			BloodGroup:  "A-",
			RequestDate: time.Now().Format("2006-01-02"),
			Units:       1.5,
			BankID:      1,
		}
	}

	t.Run("valid request starts pending", func(t *testing.T) {
		requests := newFakeRequestRepo()
		recipients := newFakeRecipientRepo(&models.Recipient{ID: 1, BankID: 1})
		svc := NewRequestService(fakeTxRunner{}, requests, recipients, admin(1), newFakeStockRepo())

		request, err := svc.Add(context.Background(), 1, input())
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if request.Status != "Pending" {
			t.Errorf("Status = %s, want Pending", request.Status)
		}
		if request.FulfilledBy != 1 {
			t.Errorf("FulfilledBy = %d, want the acting admin", request.FulfilledBy)
		}
	})

	t.Run("recipient from another bank denied", func(t *testing.T) {
		requests := newFakeRequestRepo()
		recipients := newFakeRecipientRepo(&models.Recipient{ID: 1, BankID: 2})
		svc := NewRequestService(fakeTxRunner{}, requests, recipients, admin(1), newFakeStockRepo())

		if _, err := svc.Add(context.Background(), 1, input()); !errors.Is(err, ErrRecipientBankMismatch) {
			t.Errorf("error = %v, want ErrRecipientBankMismatch", err)
		}
		if len(requests.requests) != 0 {
			t.Errorf("created %d requests, want none", len(requests.requests))
		}
	})

	t.Run("request targeting another bank denied", func(t *testing.T) {
		requests := newFakeRequestRepo()
		recipients := newFakeRecipientRepo(&models.Recipient{ID: 1, BankID: 1})
		svc := NewRequestService(fakeTxRunner{}, requests, recipients, admin(1), newFakeStockRepo())

		moved := input()
		moved.BankID = 2
		if _, err := svc.Add(context.Background(), 1, moved); !errors.Is(err, ErrRequestBankMismatch) {
			t.Errorf("error = %v, want ErrRequestBankMismatch", err)
		}
		if len(requests.requests) != 0 {
			t.Errorf("created %d requests, want none", len(requests.requests))
		}
	})
}

func TestRequestUpdateStatus(t *testing.T) {
	pendingRequest := func() *models.Request {
		return &models.Request{
			ID: 1, RecipientID: 1, BloodGroup: "A-", Units: 2,
			Status: "Pending", FulfilledBy: 1, BankID: 1,
		}
	}
	admin := func(bankID uint) *fakeAdminRepo {
		return newFakeAdminRepo(&models.Admin{ID: 1, Username: "fulfiller1", BankID: bankID})
	}

	t.Run("completing decrements stock", func(t *testing.T) {
		requests := newFakeRequestRepo(pendingRequest())
		stock := newFakeStockRepo().set(1, "A-", 5)
		svc := NewRequestService(fakeTxRunner{}, requests, newFakeRecipientRepo(), admin(1), stock)

		request, err := svc.UpdateStatus(context.Background(), 1, 1, "Completed")
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if request.Status != "Completed" {
			t.Errorf("Status = %s, want Completed", request.Status)
		}
		if requests.requests[1].Status != "Completed" {
			t.Errorf("stored Status = %s, want Completed", requests.requests[1].Status)
		}
		if got := stock.units[stockKey{1, "A-"}]; got != 3 {
			t.Errorf("stock after completion = %.1f, want 3.0", got)
		}
	})

	t.Run("rejecting leaves stock untouched", func(t *testing.T) {
		requests := newFakeRequestRepo(pendingRequest())
		stock := newFakeStockRepo().set(1, "A-", 5)
		svc := NewRequestService(fakeTxRunner{}, requests, newFakeRecipientRepo(), admin(1), stock)

		request, err := svc.UpdateStatus(context.Background(), 1, 1, "Rejected")
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if request.Status != "Rejected" {
			t.Errorf("Status = %s, want Rejected", request.Status)
		}
		if got := stock.units[stockKey{1, "A-"}]; got != 5 {
			t.Errorf("stock = %.1f, want untouched 5.0", got)
		}
	})

	t.Run("insufficient stock blocks completion", func(t *testing.T) {
		requests := newFakeRequestRepo(pendingRequest())
		stock := newFakeStockRepo().set(1, "A-", 1)
		svc := NewRequestService(fakeTxRunner{}, requests, newFakeRecipientRepo(), admin(1), stock)

		if _, err := svc.UpdateStatus(context.Background(), 1, 1, "Completed"); !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("error = %v, want ErrInsufficientStock", err)
		}
		if requests.requests[1].Status != "Pending" {
			t.Errorf("stored Status = %s, want still Pending", requests.requests[1].Status)
		}
		if got := stock.units[stockKey{1, "A-"}]; got != 1 {
			t.Errorf("stock = %.1f, want untouched 1.0", got)
		}
	})

	t.Run("pending to pending rejected", func(t *testing.T) {
		svc := NewRequestService(fakeTxRunner{}, newFakeRequestRepo(pendingRequest()),
			newFakeRecipientRepo(), admin(1), newFakeStockRepo())

		if _, err := svc.UpdateStatus(context.Background(), 1, 1, "Pending"); !errors.Is(err, ErrRequestTransition) {
			t.Errorf("error = %v, want ErrRequestTransition", err)
		}
	})

	t.Run("completed is terminal", func(t *testing.T) {
		done := pendingRequest()
		done.Status = "Completed"
		svc := NewRequestService(fakeTxRunner{}, newFakeRequestRepo(done),
			newFakeRecipientRepo(), admin(1), newFakeStockRepo())

		if _, err := svc.UpdateStatus(context.Background(), 1, 1, "Rejected"); !errors.Is(err, ErrRequestTransition) {
			t.Errorf("error = %v, want ErrRequestTransition", err)
		}
	})

	t.Run("cross-bank admin denied", func(t *testing.T) {
		requests := newFakeRequestRepo(pendingRequest())
		svc := NewRequestService(fakeTxRunner{}, requests, newFakeRecipientRepo(), admin(2), newFakeStockRepo())

		if _, err := svc.UpdateStatus(context.Background(), 1, 1, "Completed"); !errors.Is(err, ErrRequestBankMismatch) {
			t.Errorf("error = %v, want ErrRequestBankMismatch", err)
		}
		if requests.requests[1].Status != "Pending" {
			t.Errorf("stored Status = %s, want still Pending", requests.requests[1].Status)
		}
	})

	t.Run("concurrent status change detected", func(t *testing.T) {
		requests := newFakeRequestRepo(pendingRequest())
		requests.raceStatus = "Rejected"
		stock := newFakeStockRepo().set(1, "A-", 5)
		svc := NewRequestService(fakeTxRunner{}, requests, newFakeRecipientRepo(), admin(1), stock)

		if _, err := svc.UpdateStatus(context.Background(), 1, 1, "Completed"); !errors.Is(err, ErrConcurrentStatusChange) {
			t.Errorf("error = %v, want ErrConcurrentStatusChange", err)
		}
		if requests.requests[1].Status != "Rejected" {
			t.Errorf("stored Status = %s, want the concurrent Rejected", requests.requests[1].Status)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewRequestService(fakeTxRunner{}, newFakeRequestRepo(pendingRequest()),
			newFakeRecipientRepo(), admin(1), newFakeStockRepo())

		if _, err := svc.UpdateStatus(context.Background(), 1, 1, "Approved"); !errors.Is(err, ErrRequestStatusUnknown) {
			t.Errorf("error = %v, want ErrRequestStatusUnknown", err)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		svc := NewRequestService(fakeTxRunner{}, newFakeRequestRepo(),
			newFakeRecipientRepo(), admin(1), newFakeStockRepo())

		if _, err := svc.UpdateStatus(context.Background(), 9, 1, "Completed"); !errors.Is(err, ErrRequestNotFound) {
			t.Errorf("error = %v, want ErrRequestNotFound", err)
		}
	})
}
