package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Handlers map these onto HTTP status codes with errors.Is.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("service unavailable")
)

// notFound translates gorm's missing-row error and passes everything else through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found: %w", what, ErrNotFound)
	}
	return err
}
