package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/pkg/password"
	"bloodlink-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// Admin service errors. Admin lookups share ErrAdminNotFound with the
// donation and request services.
var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// AdminService handles admin account management. Accounts are created by
// other admins and are permanently bound to one bank at creation; full name
// and id are immutable afterwards.
type AdminService struct {
	adminRepo        repositories.AdminRepository
	bankRepo         repositories.BankRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	adminRepo repositories.AdminRepository,
	bankRepo repositories.BankRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *AdminService {
	return &AdminService{
		adminRepo:        adminRepo,
		bankRepo:         bankRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// CreateAdminInput is the add-admin payload
type CreateAdminInput struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Role          string `json:"roleName"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	BankID        uint   `json:"bankId"`
}

// Create creates a new admin account with a bcrypt-hashed password
func (s *AdminService) Create(ctx context.Context, input *CreateAdminInput) (*models.AdminResponse, error) {
	if !validation.FullName(input.FullName) {
		return nil, validationError("full name must be 2-100 letters, spaces, dots, apostrophes or hyphens")
	}
	if !validation.Email(input.Email) {
		return nil, validationError("invalid email address")
	}
	if !validation.Phone(input.ContactNumber) {
		return nil, validationError("contact number must be exactly 10 digits")
	}
	if !validation.Role(input.Role) {
		return nil, validationError("role must be Manager, Assistant Manager, Account Manager or Support Staff")
	}
	if !validation.Username(input.Username) {
		return nil, validationError("username must be at least 6 characters")
	}
	if !validation.Password(input.Password) {
		return nil, validationError("password must be at least 6 characters and contain a digit")
	}

	exists, err := s.bankRepo.Exists(ctx, input.BankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBankNotFound
	}

	taken, err := s.adminRepo.ExistsByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		FullName:      strings.TrimSpace(input.FullName),
		Email:         strings.TrimSpace(input.Email),
		ContactNumber: input.ContactNumber,
		Role:          input.Role,
		Username:      strings.TrimSpace(input.Username),
		Password:      hashed,
		BankID:        input.BankID,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Printf("✅ Admin created: %s [%s] (bank %d)", admin.Username, admin.Role, admin.BankID)

	return admin.ToResponse(), nil
}

// List lists all admin accounts (password hashes never leave the service)
func (s *AdminService) List(ctx context.Context) ([]*models.AdminResponse, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AdminResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, admin.ToResponse())
	}
	return responses, nil
}

// UpdateAdminInput carries the mutable admin fields. Full name and id are
// immutable once created.
type UpdateAdminInput struct {
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Role          string `json:"roleName"`
	Username      string `json:"username"`
	BankID        uint   `json:"bankId"`
}

// Update edits an admin account
func (s *AdminService) Update(ctx context.Context, adminID uint, input *UpdateAdminInput) (*models.AdminResponse, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if !validation.Email(input.Email) {
		return nil, validationError("invalid email address")
	}
	if !validation.Phone(input.ContactNumber) {
		return nil, validationError("contact number must be exactly 10 digits")
	}
	if !validation.Role(input.Role) {
		return nil, validationError("role must be Manager, Assistant Manager, Account Manager or Support Staff")
	}
	if !validation.Username(input.Username) {
		return nil, validationError("username must be at least 6 characters")
	}

	exists, err := s.bankRepo.Exists(ctx, input.BankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBankNotFound
	}

	taken, err := s.adminRepo.ExistsByUsernameExcept(ctx, strings.TrimSpace(input.Username), admin.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	admin.Email = strings.TrimSpace(input.Email)
	admin.ContactNumber = input.ContactNumber
	admin.Role = input.Role
	admin.Username = strings.TrimSpace(input.Username)
	admin.BankID = input.BankID

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}

	return admin.ToResponse(), nil
}

// Delete permanently removes an admin account. Entities created by the
// account keep their collected_by / fulfilled_by values; there is no
// cascading reassignment.
func (s *AdminService) Delete(ctx context.Context, adminID, actorAdminID uint) error {
	if adminID == actorAdminID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.adminRepo.GetByID(ctx, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	// Kill the account's sessions so a deleted admin cannot refresh back in.
	if err := s.refreshTokenRepo.RevokeAllByAdminID(ctx, adminID); err != nil {
		return err
	}

	return s.adminRepo.Delete(ctx, adminID)
}
