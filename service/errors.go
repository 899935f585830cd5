package service

import (
	"errors"
	"fmt"

	"ridedispatch/storage"
)

// Error kinds. The API layer maps each kind to an HTTP status.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
)

// Error is a client-facing failure. errors.Is matches it against its Kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// fromStorage converts storage sentinels into service errors about the named entity.
func fromStorage(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return newError(ErrNotFound, "%s not found", entity)
	case errors.Is(err, storage.ErrConflict):
		return newError(ErrConflict, "%s already exists", entity)
	case errors.Is(err, storage.ErrReference):
		return newError(ErrConflict, "%s is referenced by other records", entity)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
