package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken("user-1", "user@example.com", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "user@example.com" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Purpose != PurposeAccess {
		t.Fatalf("expected access purpose, got %q", claims.Purpose)
	}

	if _, err := manager.ParseToken(token + "tampered"); err == nil {
		t.Fatalf("expected parse error for tampered token")
	}
}

func TestJWTManager_ResetToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateResetToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Purpose != PurposeReset {
		t.Fatalf("expected reset purpose, got %q", claims.Purpose)
	}
	if claims.Role != "" {
		t.Fatalf("expected no role on reset token")
	}
}

func TestJWTManager_EmptySecret(t *testing.T) {
	manager := NewJWTManager("", time.Hour)
	if _, err := manager.GenerateToken("user", "user@example.com", "sales"); err == nil {
		t.Fatalf("expected error when secret is empty")
	}
}
