package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrConflict      = errors.New("record changed since it was read")
)

// FetchError reports a failed remote read.
type FetchError struct {
	Sheet string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s data: %v", e.Sheet, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a failed append, update or clear. Op is one of
// "append", "update" or "clear".
type WriteError struct {
	Sheet string
	Op    string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s %s row: %v", e.Op, e.Sheet, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Sheet string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q not found", e.Sheet, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type DuplicateUserError struct {
	Email string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user %s already exists", e.Email)
}

func (e *DuplicateUserError) Is(target error) bool { return target == ErrDuplicateUser }

// ConflictError is returned when an update carries a version that no longer
// matches the stored row.
type ConflictError struct {
	Sheet string
	ID    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: row %s was modified by someone else", e.Sheet, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
