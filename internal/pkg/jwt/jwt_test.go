package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "manager1", "Manager", 2, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}

	if claims.AdminID != 7 {
		t.Errorf("AdminID = %d, want 7", claims.AdminID)
	}
	if claims.Username != "manager1" {
		t.Errorf("Username = %s, want manager1", claims.Username)
	}
	if claims.Role != "Manager" {
		t.Errorf("Role = %s, want Manager", claims.Role)
	}
	if claims.BankID != 2 {
		t.Errorf("BankID = %d, want 2", claims.BankID)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "manager1", "Manager", 1, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "manager1", "Manager", 1, testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(3, "token-id-1", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.AdminID != 3 || claims.TokenID != "token-id-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	token, err := GenerateRefreshToken(3, "token-id-1", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err == nil && claims.AdminID != 0 && claims.Username != "" {
		t.Error("refresh token should not carry access claims")
	}
}
