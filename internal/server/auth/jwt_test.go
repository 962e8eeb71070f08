package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	email := "ann@x.com"

	tok, err := GenerateToken(email, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetEmailFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetEmailFromToken error: %v", err)
	}
	if got != email {
		t.Fatalf("email mismatch: got %q want %q", got, email)
	}
}

func TestGetEmailFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetEmailFromToken(tok, secret)
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired in chain, got %v", err)
	}
}

func TestGetEmailFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetEmailFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken for invalid signature, got %v", err)
	}
}

func TestGetEmailFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetEmailFromToken("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestGetEmailFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Email: "a@x.com"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := GetEmailFromToken(tok, secret); err == nil {
		t.Fatalf("expected HS512 token to be rejected")
	}
}

func TestGetEmailFromToken_MissingEmail(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := GetEmailFromToken(tok, secret); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}
