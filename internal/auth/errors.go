package auth

import "errors"

var (
	// ErrNotAuthorized is returned when the boundary denies a request: the actor is neither the owner of the
	// property nor a manager holding the required capability.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrUserNameOrEmailExists is returned when attempting to register an email that already exists.
	ErrUserNameOrEmailExists = errors.New("user with this email already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a bearer token fails to parse or verify.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSigningKeyEmpty is returned when a token issuer is created without a key.
	ErrSigningKeyEmpty = errors.New("token signing key can not be empty")
)
