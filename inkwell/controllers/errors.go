package controllers

import "errors"

// The few failures a route cares to distinguish. Anything else coming out of
// the store is logged and answered as a generic 500 at the route boundary.
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
)
