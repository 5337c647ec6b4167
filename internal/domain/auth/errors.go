package auth

import "errors"

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// inactive accounts alike so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or missing token")
)
