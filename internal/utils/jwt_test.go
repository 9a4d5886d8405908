package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"

	tok, err := NewAccessToken(secret, 42, "REALTOR", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Exp.Before(time.Now()) {
		t.Errorf("token already expired: %v", tok.Exp)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse back: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims["sub"] != float64(42) {
		t.Errorf("expected sub 42, got %v", claims["sub"])
	}
	if claims["role"] != "REALTOR" {
		t.Errorf("expected role REALTOR, got %v", claims["role"])
	}

	t.Run("wrong secret is rejected", func(t *testing.T) {
		_, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
			return []byte("other"), nil
		})
		if err == nil {
			t.Error("expected verification failure with wrong secret")
		}
	})
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens must not collide")
	}
	if len(a.Raw) != 96 {
		t.Errorf("expected 96 hex chars, got %d", len(a.Raw))
	}
	if HashRefreshRaw(a.Raw) == HashRefreshRaw(b.Raw) {
		t.Error("hashes of distinct tokens must differ")
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Error("hashing must be deterministic")
	}
}
