// Package auth holds the demo login. The token it issues is a fixed-format
// placeholder: nothing in the service checks it, so it grants no access.
package auth

import (
	"strings"

	"github.com/pkg/errors"
)

const DemoTokenPrefix = "demo-token-"

var ErrInvalidEmail = errors.New("Invalid email")

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ValidateEmail accepts any non-empty string containing "@".
func ValidateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func DemoToken(email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	return DemoTokenPrefix + email, nil
}
