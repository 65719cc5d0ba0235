package domain

import "fmt"

// ValidationError is a client fault: a malformed identifier, body or field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
