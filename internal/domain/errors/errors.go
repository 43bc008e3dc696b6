package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnknownState       = errors.New("unknown order state")
	ErrEmptyCart          = errors.New("empty cart")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotACourier        = errors.New("staff member is not a courier")
)
