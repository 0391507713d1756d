package usertoken

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerifySubject(t *testing.T) {
	v, err := NewVerifier("secret", 0)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	subject, err := v.VerifySubject(signToken(t, "secret", "user-1", time.Hour))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("subject = %q, want user-1", subject)
	}
}

func TestVerifySubjectWrongSecret(t *testing.T) {
	v, _ := NewVerifier("secret", 0)
	if _, err := v.VerifySubject(signToken(t, "other", "user-1", time.Hour)); err == nil {
		t.Fatalf("expected signature error for wrong secret")
	}
}

func TestVerifySubjectExpired(t *testing.T) {
	v, _ := NewVerifier("secret", time.Second)
	if _, err := v.VerifySubject(signToken(t, "secret", "user-1", -time.Hour)); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerifySubjectMissingSubject(t *testing.T) {
	v, _ := NewVerifier("secret", 0)
	if _, err := v.VerifySubject(signToken(t, "secret", "", time.Hour)); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestNewVerifierRequiresSecret(t *testing.T) {
	if _, err := NewVerifier("  ", 0); err == nil {
		t.Fatalf("expected error for blank secret")
	}
}
