package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for documents that violate the model's constraints.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingReference is matched by MissingReferenceError.
	ErrMissingReference = errors.New("missing reference")
)

// MissingReferenceError reports a node that names a data block or asset
// that does not exist.
type MissingReferenceError struct {
	Kind string // "mesh asset", "light" or "camera"
	Name string
	Node string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("node %q: %s %q not found", e.Node, e.Kind, e.Name)
}

// Is makes errors.Is(err, ErrMissingReference) true.
func (e *MissingReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
