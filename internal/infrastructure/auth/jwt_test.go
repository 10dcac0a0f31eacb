package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Generate("u-1", "player")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != "player" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, err := m.Generate("u-1", "player")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("different", time.Hour)

	token, err := m.Generate("u-1", "player")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = other.Verify(token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	_, err := m.Verify("not-a-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}
