package ledger

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below, for use with errors.Is.
var (
	ErrDuplicateName   = errors.New("duplicate name")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnknownPerson   = errors.New("unknown person")
	ErrAmbiguousName   = errors.New("ambiguous name")
)

// DuplicateNameError is returned when a new name matches an existing one.
type DuplicateNameError struct {
	Name     string
	Existing string
}

func (e *DuplicateNameError) Error() string {
	if e.Name == e.Existing {
		return fmt.Sprintf("a person named %q already exists", e.Existing)
	}
	return fmt.Sprintf("a person named %q already exists (matched by %q)", e.Existing, e.Name)
}

// Is reports ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// InvalidArgumentError describes an argument of the wrong shape.
type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is reports ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// RecordNotFoundError is returned when loading a person whose record does
// not exist and missing records are configured to propagate.
type RecordNotFoundError struct {
	Name string
	Err  error
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("no stored record for %q", e.Name)
}

// Is reports ErrRecordNotFound.
func (e *RecordNotFoundError) Is(target error) bool { return target == ErrRecordNotFound }

func (e *RecordNotFoundError) Unwrap() error { return e.Err }

func invalid(op, format string, args ...any) error {
	return &InvalidArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
