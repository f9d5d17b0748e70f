package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Reference data
// ============================================================

// Bank represents the blood_banks table. Seeded, never mutated through the
// API; it is the tenant boundary every scoped row points at.
type Bank struct {
	ID       uint   `gorm:"primaryKey" json:"bank_id"`
	Name     string `gorm:"size:100;not null" json:"bank_name"`
	Location string `gorm:"size:200" json:"location"`
}

func (Bank) TableName() string {
	return "blood_banks"
}

// ============================================================
// Accounts
// ============================================================

// Admin represents the admins table. Admin accounts are created by other
// admins, never self-registered. Deletes are hard deletes.
type Admin struct {
	ID            uint      `gorm:"primaryKey" json:"admin_id"`
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Email         string    `gorm:"size:100;not null" json:"email"`
	ContactNumber string    `gorm:"size:10;not null" json:"contact_number"`
	Role          string    `gorm:"size:30;not null" json:"role"`
	Username      string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	BankID        uint      `gorm:"index;not null" json:"bank_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Bank          Bank      `gorm:"foreignKey:BankID" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO (never carries the password hash)
type AdminResponse struct {
	ID            uint      `json:"admin_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	Role          string    `json:"role"`
	Username      string    `json:"username"`
	BankID        uint      `json:"bank_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:            a.ID,
		FullName:      a.FullName,
		Email:         a.Email,
		ContactNumber: a.ContactNumber,
		Role:          a.Role,
		Username:      a.Username,
		BankID:        a.BankID,
		CreatedAt:     a.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AdminID   uint       `gorm:"index;not null" json:"admin_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Admin     Admin      `gorm:"foreignKey:AdminID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Donors & recipients
// ============================================================

// Donor represents the donors table. Name, age, gender and blood group are
// immutable after public registration; only contact fields may change, and
// only through an admin of the owning bank.
type Donor struct {
	ID               uint       `gorm:"primaryKey" json:"donor_id"`
	FullName         string     `gorm:"size:100;not null" json:"full_name"`
	Age              int        `gorm:"not null" json:"age"`
	Gender           string     `gorm:"size:10;not null" json:"gender"`
	BloodGroup       string     `gorm:"size:3;not null" json:"blood_group"`
	ContactNumber    string     `gorm:"size:10;not null" json:"contact_number"`
	Email            string     `gorm:"size:100;not null" json:"email"`
	Address          string     `gorm:"size:200;not null" json:"address"`
	LastDonationDate *time.Time `gorm:"type:date" json:"last_donation_date"`
	BankID           uint       `gorm:"index;not null" json:"bank_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Bank             Bank       `gorm:"foreignKey:BankID" json:"-"`
}

func (Donor) TableName() string {
	return "donors"
}

// Recipient represents the recipients table
type Recipient struct {
	ID            uint      `gorm:"primaryKey" json:"recipient_id"`
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Age           int       `gorm:"not null" json:"age"`
	Gender        string    `gorm:"size:10;not null" json:"gender"`
	BloodGroup    string    `gorm:"size:3;not null" json:"blood_group"`
	ContactNumber string    `gorm:"size:10;not null" json:"contact_number"`
	Email         string    `gorm:"size:100;not null" json:"email"`
	Address       string    `gorm:"size:200;not null" json:"address"`
	BankID        uint      `gorm:"index;not null" json:"bank_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Bank          Bank      `gorm:"foreignKey:BankID" json:"-"`
}

func (Recipient) TableName() string {
	return "recipients"
}

// ============================================================
// Workflow rows
// ============================================================

// Donation represents the donations table. Append-only; rows are never
// updated or deleted through the API.
type Donation struct {
	ID           uint      `gorm:"primaryKey" json:"donation_id"`
	DonorID      uint      `gorm:"index;not null" json:"donor_id"`
	BloodGroup   string    `gorm:"size:3;not null" json:"blood_group"`
	DonationDate time.Time `gorm:"type:date;not null" json:"donation_date"`
	Units        float64   `gorm:"type:decimal(4,1);not null" json:"units"`
	CollectedBy  uint      `gorm:"not null" json:"collected_by"`
	BankID       uint      `gorm:"index;not null" json:"bank_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Donor        Donor     `gorm:"foreignKey:DonorID" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}

// Request represents the requests table
type Request struct {
	ID          uint      `gorm:"primaryKey" json:"request_id"`
	RecipientID uint      `gorm:"index;not null" json:"recipient_id"`
	BloodGroup  string    `gorm:"size:3;not null" json:"blood_group"`
	RequestDate time.Time `gorm:"type:date;not null" json:"request_date"`
	Units       float64   `gorm:"type:decimal(4,1);not null" json:"units"`
	Status      string    `gorm:"size:10;not null;default:'Pending'" json:"request_status"`
	FulfilledBy uint      `gorm:"not null" json:"fulfilled_by"`
	BankID      uint      `gorm:"index;not null" json:"bank_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Recipient   Recipient `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Request) TableName() string {
	return "requests"
}

// BloodStock represents the blood_stock table, one row per (bank, group).
type BloodStock struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BankID         uint      `gorm:"uniqueIndex:idx_bank_group;not null" json:"bank_id"`
	BloodGroup     string    `gorm:"uniqueIndex:idx_bank_group;size:3;not null" json:"blood_group"`
	UnitsAvailable float64   `gorm:"type:decimal(7,1);not null;default:0" json:"units_available"`
	LastUpdated    time.Time `gorm:"autoUpdateTime" json:"last_updated"`
	Bank           Bank      `gorm:"foreignKey:BankID" json:"-"`
}

func (BloodStock) TableName() string {
	return "blood_stock"
}

// ============================================================
// Join-enriched listing rows
// ============================================================

// StockRow is the public bloodstock view joined with bank details.
type StockRow struct {
	BloodGroup     string    `json:"blood_group"`
	UnitsAvailable float64   `json:"units_available"`
	LastUpdated    time.Time `json:"last_updated"`
	BankName       string    `json:"bank_name"`
	BankID         uint      `json:"bank_id"`
	Location       string    `json:"location"`
}

// DonationRow is a donation listing row joined with donor details.
type DonationRow struct {
	DonationID   uint      `json:"donation_id"`
	DonorID      uint      `json:"donor_id"`
	FullName     string    `json:"full_name"`
	BloodGroup   string    `json:"blood_group"`
	DonationDate time.Time `json:"donation_date"`
	Units        float64   `json:"units"`
	BankID       uint      `json:"bank_id"`
	CollectedBy  uint      `json:"collected_by"`
}

// RequestRow is a request listing row joined with recipient details.
type RequestRow struct {
	RequestID           uint      `json:"request_id"`
	RecipientID         uint      `json:"recipient_id"`
	FullName            string    `json:"full_name"`
	RequestedBloodGroup string    `json:"requested_blood_group"`
	RequestDate         time.Time `json:"request_date"`
	Units               float64   `json:"units"`
	BankID              uint      `json:"bank_id"`
	Status              string    `json:"request_status"`
	FulfilledBy         uint      `json:"fulfilled_by"`
}

// DonorHistoryRow is one donation in a donor's history.
type DonorHistoryRow struct {
	FullName     string    `json:"full_name"`
	Age          int       `json:"age"`
	BloodGroup   string    `json:"blood_group"`
	DonationDate time.Time `json:"donation_date"`
	Units        float64   `json:"units"`
}

// RecipientHistoryRow is one request in a recipient's history.
type RecipientHistoryRow struct {
	FullName            string    `json:"full_name"`
	Age                 int       `json:"age"`
	BloodGroup          string    `json:"blood_group"`
	RequestDate         time.Time `json:"request_date"`
	RequestedBloodGroup string    `json:"requested_blood_group"`
	Units               float64   `json:"units"`
	Status              string    `json:"request_status"`
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Bank{},
		&Admin{},
		&RefreshToken{},
		&Donor{},
		&Recipient{},
		&Donation{},
		&Request{},
		&BloodStock{},
	)
}
