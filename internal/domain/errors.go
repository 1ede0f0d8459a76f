package domain

import "errors"

// Authentication and authorization errors
var (
	ErrInvalidCredentials = errors.New("wrong login or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongTokenType     = errors.New("wrong token type")
	ErrForbidden          = errors.New("insufficient permissions")
)

// Resource-state errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this login already exists")
	ErrCityNotFound = errors.New("city with this ID does not exist")
)

// Field validation errors
var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrBirthdayInFuture = errors.New("birthday cannot be in the future")
)

// IsValidation reports whether err is a field validation failure, which the
// API boundary maps to a 400 rather than a resource-state code.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrBirthdayInFuture)
}
