package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(42, "Ada")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	identity, err := tokens.Verify("Bearer " + raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.UserID != 42 || identity.Name != "Ada" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if identity.TokenID == "" {
		t.Fatalf("expected token id")
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	raw, err := NewTokens("secret", time.Hour).Issue(1, "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = NewTokens("other", time.Hour).Verify(raw)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens.Now = func() time.Time { return issuedAt }
	raw, err := tokens.Issue(1, "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tokens.Now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = tokens.Verify(raw)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Verify("  ")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
