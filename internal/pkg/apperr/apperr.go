package apperr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Services wrap these with context via the *f helpers;
// callers branch with errors.Is and the HTTP layer maps them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrExternal     = errors.New("external failure")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

func Externalf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrExternal)...)
}
