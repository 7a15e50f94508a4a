package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	token, expiresAt, err := GenerateToken("secret", "user-1", 24)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !expiresAt.After(time.Now().Add(23 * time.Hour)) {
		t.Error("expiry too soon")
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id = %q, want user-1", claims.UserID)
	}
	if claims.Issuer != "taskboard" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret", "user-1", 24)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("expected an error for a token signed with a different secret")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}
