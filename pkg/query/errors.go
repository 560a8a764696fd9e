package query

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	ErrNotFound  = errors.New("no matching element")
	ErrAmbiguous = errors.New("more than one matching element")
)

// NotFoundError reports that a query required a match and found none.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "query: " + ErrNotFound.Error()
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousError reports that a query required one match and found more.
// Count is the number seen before the query stopped.
type AmbiguousError struct {
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("query: %s (stopped at %d)", ErrAmbiguous, e.Count)
}

// Is reports whether target is ErrAmbiguous.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}
