package auth

import "errors"

// Common authentication service errors
var (
	// ErrMissingSecret indicates no signing secret was configured. The service
	// refuses to start rather than issue unsigned or guessable tokens.
	ErrMissingSecret = errors.New("jwt secret is not configured")

	// ErrWeakSecret indicates the signing secret is shorter than MinSecretLength.
	ErrWeakSecret = errors.New("jwt secret is too short")

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf or iat claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingClaims indicates a correctly signed token without userId or username.
	ErrMissingClaims = errors.New("authentication token is missing identity claims")

	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordTooLong indicates a password longer than bcrypt can hash.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
