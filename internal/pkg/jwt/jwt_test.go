package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("secret", 12*time.Hour)

	token, err := svc.Generate("budi@nusapay.io")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Email != "budi@nusapay.io" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("secret", -time.Minute)

	token, err := svc.Generate("budi@nusapay.io")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("secret", time.Hour)

	if _, err := svc.Validate("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Generate("budi@nusapay.io")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := NewService("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
