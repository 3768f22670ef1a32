package services

import "github.com/tmahefa/facturier/internal/validation"

// ValidationError rejects an operation before any mutation occurs. Handlers
// unwrap it into a 400 with the field map.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation_failed" }
