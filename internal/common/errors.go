// Package common defines sentinel errors shared by the repository, service and
// transport layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level errors.
	ErrorValidation = errors.New("validation error")
)
