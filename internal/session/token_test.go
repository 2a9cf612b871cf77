package session

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestUsernameFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"username": "alice"})

	username, err := UsernameFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected alice, got %q", username)
	}
}

func TestUsernameFromTokenMalformed(t *testing.T) {
	_, err := UsernameFromToken("not-a-jwt")
	if err == nil {
		t.Fatal("expected an error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestUsernameFromTokenMissingClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "42"})

	_, err := UsernameFromToken(token)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}
