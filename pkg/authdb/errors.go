package authdb

import "errors"

// ErrOAuthNotSupported is returned from OAuth-account operations on an
// adapter that was constructed without an OAuth account schema.
var ErrOAuthNotSupported = errors.New("authdb: oauth accounts not supported")

// ErrUnknownField is returned when a field map names a column the model
// does not declare.
var ErrUnknownField = errors.New("authdb: unknown field")
