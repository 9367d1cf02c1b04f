package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")

	// Token related errors
	ErrInvalidToken = errors.New("invalid or expired token")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Document related errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrPublicIDTaken    = errors.New("public id already taken")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
