// Package login provides the registration and login endpoints.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidCredentials is returned when the email and/or password are not valid.
	// Unknown emails and wrong passwords are reported the same way.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInternalServerError is returned for unexpected failures during the login process.
	ErrInternalServerError = errors.New("internal server error")
)
