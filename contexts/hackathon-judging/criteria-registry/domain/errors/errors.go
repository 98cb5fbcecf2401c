package errors

import "errors"

var (
	ErrInvalidEventID    = errors.New("invalid event id")
	ErrCriterionNotFound = errors.New("criterion not found")
)
