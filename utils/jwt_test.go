package utils

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("507f1f77bcf86cd799439011", "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("expected token to validate, got %v", err)
	}
	if claims.ID != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected id claim: %q", claims.ID)
	}
	if claims.Status != "manager" {
		t.Fatalf("unexpected status claim: %q", claims.Status)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
