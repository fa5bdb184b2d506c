// Package nestedset holds the pure interval arithmetic behind the
// chart-of-accounts tree encoding. The SQL side (shifting bounds, locking)
// lives in the pgsql repository; everything here is side-effect free so the
// invariants can be tested without a database.
package nestedset

import (
	"errors"
	"fmt"
)

// Interval is one node's [Left, Right) style bound pair. Left < Right always.
type Interval struct {
	Left  int64
	Right int64
}

// Valid reports whether the bounds are ordered.
func (iv Interval) Valid() bool {
	return iv.Left < iv.Right
}

// IsLeaf reports whether no other interval can nest inside iv.
func (iv Interval) IsLeaf() bool {
	return iv.Right-iv.Left == 1
}

// Contains reports whether inner nests strictly inside iv, i.e. iv's node is
// an ancestor of inner's node.
func (iv Interval) Contains(inner Interval) bool {
	return iv.Left < inner.Left && inner.Right < iv.Right
}

// ChildOf returns the interval a new child occupies after insertion under
// parent: every existing bound >= parent.Right is first shifted by +2, then
// the child takes the two freed positions just inside the parent's (widened)
// right bound.
func ChildOf(parent Interval) Interval {
	return Interval{Left: parent.Right, Right: parent.Right + 1}
}

// RootAfter returns the interval for a new root appended after the tenant's
// current rightmost bound. maxRight is 0 for an empty tenant.
func RootAfter(maxRight int64) Interval {
	return Interval{Left: maxRight + 1, Right: maxRight + 2}
}

// ErrCorruptTraversal indicates a lft-ordered sequence that does not encode a
// valid forest.
var ErrCorruptTraversal = errors.New("nested-set traversal is corrupt")

// ValidateTraversal checks that a sequence of intervals, ordered by Left,
// encodes a proper forest: bounds are ordered, intervals either nest or are
// disjoint, and no two intervals share a bound. It walks the sequence with an
// ancestor stack, exactly as a pre-order traversal would.
func ValidateTraversal(intervals []Interval) error {
	var stack []Interval
	prevLeft := int64(0)
	for i, iv := range intervals {
		if !iv.Valid() {
			return fmt.Errorf("%w: interval %d has left %d >= right %d", ErrCorruptTraversal, i, iv.Left, iv.Right)
		}
		if iv.Left <= prevLeft && i > 0 {
			return fmt.Errorf("%w: interval %d out of order (left %d)", ErrCorruptTraversal, i, iv.Left)
		}
		prevLeft = iv.Left
		// Pop ancestors the current interval no longer nests inside.
		for len(stack) > 0 && stack[len(stack)-1].Right < iv.Left {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if !top.Contains(iv) {
				return fmt.Errorf("%w: interval %d [%d,%d] overlaps ancestor [%d,%d]", ErrCorruptTraversal, i, iv.Left, iv.Right, top.Left, top.Right)
			}
		}
		stack = append(stack, iv)
	}
	return nil
}
