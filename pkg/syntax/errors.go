package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching.
var (
	ErrKindMismatch = errors.New("kind mismatch")
	ErrInvalidTree  = errors.New("invalid tree")
)

// KindMismatchError reports a projection requested on a node of another kind.
type KindMismatchError struct {
	Want []Kind
	Got  Kind
}

func (e *KindMismatchError) Error() string {
	names := make([]string, len(e.Want))
	for i, k := range e.Want {
		names[i] = k.String()
	}
	return fmt.Sprintf("kind mismatch: want %s, got %s", strings.Join(names, " or "), e.Got)
}

// Is reports whether target is ErrKindMismatch.
func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch
}

// InvalidTreeError reports a green tree that violates a tree invariant.
type InvalidTreeError struct {
	Offset int
	Reason string
}

func (e *InvalidTreeError) Error() string {
	return fmt.Sprintf("invalid tree at offset %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrInvalidTree.
func (e *InvalidTreeError) Is(target error) bool {
	return target == ErrInvalidTree
}
