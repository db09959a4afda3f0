package observable

import "slices"

// Op is the kind of a single edit.
type Op int

const (
	OpDelete Op = iota + 1
	OpInsert
)

func (op Op) String() string {
	switch op {
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edit is one step of an edit script.
// Index is the position in the sequence at the moment the edit is applied,
// after every earlier edit of the same script.
type Edit[T any] struct {
	Op    Op
	Index int
	Value T
}

type stepKind int

const (
	stepEqual stepKind = iota
	stepDelete
	stepInsert
)

type step struct {
	kind stepKind
	a, b int
}

// Diff returns the shortest edit script turning a into b, using equal to
// compare elements. Edits are ordered for left-to-right application;
// within a replaced run deletions come before insertions.
//
// The script is computed with Myers' O((n+m)·d) algorithm.
func Diff[T any](a, b []T, equal func(x, y T) bool) []Edit[T] {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	trace := shortestEdit(a, b, equal)
	steps := backtrack(trace, len(a), len(b))

	var edits []Edit[T]
	index := 0
	for _, s := range steps {
		switch s.kind {
		case stepEqual:
			index++
		case stepDelete:
			edits = append(edits, Edit[T]{Op: OpDelete, Index: index, Value: a[s.a]})
		case stepInsert:
			edits = append(edits, Edit[T]{Op: OpInsert, Index: index, Value: b[s.b]})
			index++
		}
	}
	return edits
}

// shortestEdit runs the forward pass and keeps, for every depth d, the
// furthest-reaching x per diagonal as it was before depth d was explored.
func shortestEdit[T any](a, b []T, equal func(x, y T) bool) [][]int {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)

	var trace [][]int
	for d := 0; d <= limit; d++ {
		trace = append(trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && equal(a[x], b[y]) {
				x, y = x+1, y+1
			}
			v[offset+k] = x
			if x >= n && y >= m {
				return trace
			}
		}
	}
	return trace
}

func backtrack(trace [][]int, n, m int) []step {
	offset := n + m + 1
	x, y := n, m

	var steps []step
	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			steps = append(steps, step{kind: stepEqual, a: x - 1, b: y - 1})
			x, y = x-1, y-1
		}
		if d > 0 {
			if x == prevX {
				steps = append(steps, step{kind: stepInsert, a: prevX, b: prevY})
			} else {
				steps = append(steps, step{kind: stepDelete, a: prevX, b: prevY})
			}
		}
		x, y = prevX, prevY
	}

	slices.Reverse(steps)
	return steps
}
