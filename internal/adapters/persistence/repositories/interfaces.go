package repositories

import (
	"context"
	"time"

	"bloodlink-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// BankRepository defines bank repository interface (read-only reference data)
type BankRepository interface {
	List(ctx context.Context) ([]*models.Bank, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// AdminRepository defines admin repository interface
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Admin, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByUsernameExcept(ctx context.Context, username string, id uint) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByAdminID(ctx context.Context, adminID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// DonorRepository defines donor repository interface
type DonorRepository interface {
	Create(ctx context.Context, donor *models.Donor) error
	GetByID(ctx context.Context, id uint) (*models.Donor, error)
	Update(ctx context.Context, donor *models.Donor) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Donor, int64, error)
	History(ctx context.Context, donorID uint) ([]*models.DonorHistoryRow, error)
	ExistsByContact(ctx context.Context, contactNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RecipientRepository defines recipient repository interface
type RecipientRepository interface {
	Create(ctx context.Context, recipient *models.Recipient) error
	GetByID(ctx context.Context, id uint) (*models.Recipient, error)
	Update(ctx context.Context, recipient *models.Recipient) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Recipient, int64, error)
	History(ctx context.Context, recipientID uint) ([]*models.RecipientHistoryRow, error)
	ExistsByContact(ctx context.Context, contactNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// DonationRepository defines donation repository interface (append-only)
type DonationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, donation *models.Donation) error
	List(ctx context.Context, offset, limit int) ([]*models.DonationRow, int64, error)
	Details(ctx context.Context, donationID uint) ([]*models.DonorHistoryRow, error)
	SumUnitsSince(ctx context.Context, bankID uint, bloodGroup string, since time.Time) (float64, error)
}

// RequestRepository defines request repository interface
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, from, to string) (int64, error)
	List(ctx context.Context, offset, limit int) ([]*models.RequestRow, int64, error)
	Details(ctx context.Context, requestID uint) ([]*models.RecipientHistoryRow, error)
	SumCompletedUnits(ctx context.Context, bankID uint, bloodGroup string) (float64, error)
}

// StockRepository defines blood stock repository interface
type StockRepository interface {
	ListWithBank(ctx context.Context) ([]*models.StockRow, error)
	Get(ctx context.Context, tx *gorm.DB, bankID uint, bloodGroup string) (*models.BloodStock, error)
	Adjust(ctx context.Context, tx *gorm.DB, bankID uint, bloodGroup string, delta float64) error
	Set(ctx context.Context, bankID uint, bloodGroup string, units float64) error
}
