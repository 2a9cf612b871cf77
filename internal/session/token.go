package session

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeError indicates a stored token could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode session token: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// usernameClaims carries the only claim the client reads.
type usernameClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UsernameFromToken extracts the username claim without verifying the
// signature. The client holds no signing key; the claim is trusted only as
// a lookup key, and the backend re-authenticates the token on every request.
func UsernameFromToken(token string) (string, error) {
	claims := usernameClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return "", &DecodeError{Err: err}
	}
	if strings.TrimSpace(claims.Username) == "" {
		return "", &DecodeError{Err: errors.New("missing username claim")}
	}
	return claims.Username, nil
}
