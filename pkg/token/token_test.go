package token

import (
	"testing"
	"time"

	"medibook/pkg/model"
)

func testPatient() *model.Patient {
	return &model.Patient{
		ID:    "64a1f0c2e4b0a1b2c3d4e5f7",
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Age:   34,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	signed, err := issuer.Issue(testPatient())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Patient.ID != "64a1f0c2e4b0a1b2c3d4e5f7" {
		t.Errorf("wrong subject, got %s", claims.Patient.ID)
	}
	if claims.Patient.Email != "asha@example.com" {
		t.Errorf("profile not embedded, got %s", claims.Patient.Email)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret-a", time.Hour).Issue(testPatient())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	signed, err := NewIssuer("secret", -time.Minute).Issue(testPatient())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret", time.Hour).Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsEmpty(t *testing.T) {
	if _, err := NewIssuer("secret", time.Hour).Verify(""); err != ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewIssuer("secret", time.Hour).Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
