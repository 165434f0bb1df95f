package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrValidation reports bad user input: a section name or query that is too short or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound reports a reference to a section that does not exist.
	ErrNotFound = errors.New("section not found")

	// ErrConflict reports a duplicate section name. It is also an ErrValidation.
	ErrConflict = fmt.Errorf("%w: section already exists", ErrValidation)

	ErrReadOnly = errors.New("repository is in read-only mode")
)
