package services

import (
	"context"
	"errors"
	"log"

	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/config"
	"bloodlink-api/internal/pkg/jwt"
	"bloodlink-api/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

// AuthService handles admin authentication. Credentials are verified against
// bcrypt hashes; successful sign-in issues an access/refresh JWT pair and the
// refresh token is stored hashed.
type AuthService struct {
	adminRepo        repositories.AdminRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		adminRepo:        adminRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// SignInInput represents sign-in input
type SignInInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Admin        *models.AdminResponse `json:"admin"`
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
}

// SignIn authenticates an admin
func (s *AuthService) SignIn(ctx context.Context, input *SignInInput) (*AuthResponse, error) {
	// 1. Find admin by username
	admin, err := s.adminRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Generate tokens
	tokens, err := s.generateTokens(admin)
	if err != nil {
		return nil, err
	}

	// 4. Store refresh token
	if err := s.storeRefreshToken(ctx, admin.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Admin signed in: %s (bank %d)", admin.Username, admin.BankID)

	return &AuthResponse{
		Admin:        admin.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh rotates the token pair using a valid refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Look up the stored token by hash
	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if stored.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 3. Load the admin
	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Rotate: revoke the old token, issue a new pair
	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(admin)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, admin.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Admin:        admin.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// SignOut revokes the presented refresh token
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken))
}

func (s *AuthService) generateTokens(admin *models.Admin) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		admin.ID,
		admin.Username,
		admin.Role,
		admin.BankID,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		admin.ID,
		uuid.NewString(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) storeRefreshToken(ctx context.Context, adminID uint, refreshToken string) error {
	token := &models.RefreshToken{
		AdminID:   adminID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}
