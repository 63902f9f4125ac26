package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Identity errors
var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrInvalidPhone     = errors.New("phone number must have at least 10 digits")
)

// Auth flow errors
var (
	ErrFlowNotFound      = errors.New("auth flow not found or expired")
	ErrInvalidTransition = errors.New("operation not valid in current flow state")
	ErrFlowLocked        = errors.New("too many failed attempts, flow is locked")
	ErrInvalidOTP        = errors.New("otp code is incorrect")
	ErrOTPExpired        = errors.New("otp has expired, request a new one")
	ErrMPINFormat        = errors.New("mpin must be exactly 4 digits")
	ErrMPINMismatch      = errors.New("mpin and confirmation do not match")
	ErrFullNameRequired  = errors.New("full name is required")
	ErrFlatIDRequired    = errors.New("flat id is required")
)
