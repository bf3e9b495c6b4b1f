package errors

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	ErrDuplicateResourceID = errors.New("resource id already exists")
)
