package repository

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-eventdesk/auth"
	gorepo "github.com/goliatone/go-repository-bun"
)

const (
	TextCodeRecordInUse = "RECORD_IN_USE"
)

// NewRecordNotFound returns a not found error with a client facing message
func NewRecordNotFound(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithTextCode(auth.TextCodeRecordNotFound).
		WithCode(goerrors.CodeNotFound)
}

// IsRecordNotFound reports whether err signals a missing record, including
// errors produced by go-repository-bun repositories.
func IsRecordNotFound(err error) bool {
	return auth.IsRecordNotFound(err) || gorepo.IsRecordNotFound(err)
}

func mapError(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if errors.As(err, &richErr) {
		return err
	}

	if gorepo.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, notFound).
			WithTextCode(auth.TextCodeRecordNotFound).
			WithCode(goerrors.CodeNotFound)
	}

	if auth.IsUniqueViolation(err) {
		return goerrors.Wrap(err, goerrors.CategoryConflict, "record already exists").
			WithCode(goerrors.CodeConflict)
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, "repository operation failed")
}
