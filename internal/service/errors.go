package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses and envelope messages.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAnswer      = errors.New("wrong answer")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrSlugExists         = errors.New("slug already in use")
	ErrOutOfStock         = errors.New("insufficient stock")
	ErrPhotoTooLarge      = errors.New("photo exceeds size limit")
)
