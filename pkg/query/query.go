// Package query provides lazy, composable queries over syntax trees.
//
// Sequences are iter.Seq values: nothing is evaluated until the sequence
// is ranged over, and every sequence can be ranged over again.
package query

import (
	"iter"
	"slices"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// DescendantsOfKind yields the descendants of root with one of kinds, in
// the same order as Node.DescendantNodes. root itself is not included.
func DescendantsOfKind(root syntax.Node, kinds ...syntax.Kind) iter.Seq[syntax.Node] {
	return root.DescendantNodes(func(n syntax.Node) bool {
		return slices.Contains(kinds, n.Kind())
	})
}

// Filter yields the elements of seq for which keep returns true.
func Filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// Map yields fn applied to each element of seq.
func Map[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// OfType yields the nodes of seq that project successfully, skipping the
// rest. It pairs with the projection methods:
//
//	query.OfType(root.DescendantNodes(nil), syntax.Node.AsMethodDeclaration)
func OfType[T any](seq iter.Seq[syntax.Node], project func(syntax.Node) (T, error)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range seq {
			v, err := project(n)
			if err != nil {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// OfKind yields the nodes of seq with one of kinds.
func OfKind(seq iter.Seq[syntax.Node], kinds ...syntax.Kind) iter.Seq[syntax.Node] {
	return Filter(seq, func(n syntax.Node) bool {
		return slices.Contains(kinds, n.Kind())
	})
}

// Take yields at most n elements of seq.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}

// Count returns the number of elements in seq.
func Count[T any](seq iter.Seq[T]) int {
	count := 0
	for range seq {
		count++
	}
	return count
}

// Collect gathers seq into a slice.
func Collect[T any](seq iter.Seq[T]) []T {
	return slices.Collect(seq)
}

// First returns the first element of seq.
func First[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// FirstOrFail returns the first element matching pred, or a *NotFoundError.
// A nil pred matches everything.
func FirstOrFail[T any](seq iter.Seq[T], pred func(T) bool) (T, error) {
	for v := range seq {
		if pred == nil || pred(v) {
			return v, nil
		}
	}
	var zero T
	return zero, &NotFoundError{}
}

// Single returns the only element matching pred. It stops at the second
// match and reports an *AmbiguousError; with no match it reports a
// *NotFoundError. A nil pred matches everything.
func Single[T any](seq iter.Seq[T], pred func(T) bool) (T, error) {
	var (
		found T
		count int
	)
	for v := range seq {
		if pred != nil && !pred(v) {
			continue
		}
		count++
		if count > 1 {
			var zero T
			return zero, &AmbiguousError{Count: count}
		}
		found = v
	}
	if count == 0 {
		return found, &NotFoundError{}
	}
	return found, nil
}
