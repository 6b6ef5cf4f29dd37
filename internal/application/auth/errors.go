package auth

import "errors"

var (
	ErrMissingFields       = errors.New("Please fill in all fields.")
	ErrInvalidEmail        = errors.New("Invalid email address.")
	ErrEmailTaken          = errors.New("Email is already registered.")
	ErrCredentialsRequired = errors.New("Email and password are required.")
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("Invalid credentials.")

	ErrInvalidToken = errors.New("invalid authentication token")
	ErrExpiredToken = errors.New("authentication token has expired")
)
