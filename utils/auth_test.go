package utils

import (
	"errors"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("Expected hashing to succeed, got %v", err)
	}
	if hash == "s3cret-pass" {
		t.Errorf("Expected hash to differ from the password")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Errorf("Expected the right password to verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Errorf("Expected the wrong password to fail")
	}
}

func TestGenerateAndParseJWTToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("Expected token to parse, got %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected UserID user-1, got %q", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Expected email claim preserved, got %q", claims.Email)
	}
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ParseJWTToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestParseJWTTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	token, err := GenerateJWTToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got %v", err)
	}

	SetJWTSecret("second-secret")
	if _, err := ParseJWTToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken under a different secret, got %v", err)
	}
}

func TestParseJWTTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret")
	prev := jwtExpiry
	jwtExpiry = -time.Hour
	token, err := GenerateJWTToken("user-1", "user@example.com")
	jwtExpiry = prev
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got %v", err)
	}

	if _, err := ParseJWTToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateTokenAndFetchEmail(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateJWTToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got %v", err)
	}

	ok, email, err := ValidateTokenAndFetchEmail(token)
	if err != nil || !ok {
		t.Fatalf("Expected valid token, got ok=%v err=%v", ok, err)
	}
	if email != "user@example.com" {
		t.Errorf("Expected email from claims, got %q", email)
	}

	if ok, _, err := ValidateTokenAndFetchEmail("garbage"); ok || err == nil {
		t.Errorf("Expected garbage token rejected, got ok=%v err=%v", ok, err)
	}
}

func TestSetJWTExpiryIgnoresNonPositive(t *testing.T) {
	prev := jwtExpiry
	defer func() { jwtExpiry = prev }()

	SetJWTExpiry(30)
	if jwtExpiry != 30*time.Minute {
		t.Errorf("Expected 30 minute expiry, got %v", jwtExpiry)
	}
	SetJWTExpiry(0)
	if jwtExpiry != 30*time.Minute {
		t.Errorf("Expected zero minutes ignored, got %v", jwtExpiry)
	}
	SetJWTExpiry(-5)
	if jwtExpiry != 30*time.Minute {
		t.Errorf("Expected negative minutes ignored, got %v", jwtExpiry)
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("alice@example.com"); got != "alice" {
		t.Errorf("Expected alice, got %q", got)
	}
	if got := ExtractNameFromEmail("no-at-sign"); got != "no-at-sign" {
		t.Errorf("Expected the input back, got %q", got)
	}
	if got := ExtractNameFromEmail("@example.com"); got != "@example.com" {
		t.Errorf("Expected the input back for a missing local part, got %q", got)
	}
}
