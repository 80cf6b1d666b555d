package domain

import "errors"

// Lookup errors returned by repositories.
var (
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameConflict = errors.New("username conflict")
)
