package cli

import "fmt"

type notFoundError struct {
	kind string
	id   uint64
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.kind, e.id)
}

func errNotFound(kind string, id uint64) error {
	return notFoundError{kind: kind, id: id}
}

type invalidIDError struct {
	raw string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q (expected a positive integer)", e.raw)
}

func errInvalidID(raw string) error {
	return invalidIDError{raw: raw}
}
