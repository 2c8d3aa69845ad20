package mutate

import "fmt"

// ValidationError rejects a draft before any state change; the command has no
// partial effect.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

type NotFoundError struct {
	Kind string
	ID   uint64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}
