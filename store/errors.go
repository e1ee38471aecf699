package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets an id that does not
// exist. Deletes never return it: deleting an absent id is a successful
// no-op, so deletes are always safe to retry.
var ErrNotFound = errors.New("not found")

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
