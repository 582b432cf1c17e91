package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrExportJobNotFound = errors.New("export job not found")
)

// InvalidTypeError reports an export type outside {csv, xml}.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid export type %q: must be \"csv\" or \"xml\"", e.Type)
}

// InvalidFieldError reports a field name outside the known book attributes.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid export field %q", e.Field)
}

// ValidationError carries field-level detail for book payload validation.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
