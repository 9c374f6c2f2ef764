package model

import "errors"

var (
	// Member related errors
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailTaken     = errors.New("email already registered")

	// Login failures are deliberately collapsed into a single sentinel
	// so a response cannot reveal whether the email or the password was
	// wrong.
	ErrLoginFailed = errors.New("login failed")

	// Signature mismatch, corruption, expiry, malformed claims and
	// superseded refresh tokens all surface as this one value.
	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")
)
