package observable

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
)

func eqString(a, b string) bool { return a == b }

func apply[T any](values []T, edits []Edit[T]) []T {
	out := slices.Clone(values)
	for _, e := range edits {
		switch e.Op {
		case OpDelete:
			out = slices.Delete(out, e.Index, e.Index+1)
		case OpInsert:
			out = slices.Insert(out, e.Index, e.Value)
		}
	}
	return out
}

func TestDiffMinimalReplacement(t *testing.T) {
	edits := Diff([]string{"x", "y", "z"}, []string{"x", "w", "z"}, eqString)

	want := []Edit[string]{
		{Op: OpDelete, Index: 1, Value: "y"},
		{Op: OpInsert, Index: 1, Value: "w"},
	}
	if !slices.Equal(edits, want) {
		t.Errorf("Diff: got %+v, want %+v", edits, want)
	}
}

func TestDiffScripts(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []Edit[string]
	}{
		{"both empty", nil, nil, nil},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, nil},
		{
			"append",
			[]string{"a"},
			[]string{"a", "b"},
			[]Edit[string]{{OpInsert, 1, "b"}},
		},
		{
			"prepend",
			[]string{"a", "b", "c"},
			[]string{"x", "a", "b", "c"},
			[]Edit[string]{{OpInsert, 0, "x"}},
		},
		{
			"remove middle",
			[]string{"a", "b", "c"},
			[]string{"a", "c"},
			[]Edit[string]{{OpDelete, 1, "b"}},
		},
		{
			"clear",
			[]string{"a", "b"},
			nil,
			[]Edit[string]{{OpDelete, 0, "a"}, {OpDelete, 0, "b"}},
		},
		{
			"fill",
			nil,
			[]string{"a", "b"},
			[]Edit[string]{{OpInsert, 0, "a"}, {OpInsert, 1, "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.a, tt.b, eqString)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Diff: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiffAppliesToTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []string{"a", "b", "c", "d"}
	random := func() []string {
		n := rng.Intn(8)
		out := make([]string, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return out
	}

	for i := 0; i < 500; i++ {
		a, b := random(), random()
		edits := Diff(a, b, eqString)
		if got := apply(a, edits); !slices.Equal(got, b) {
			t.Fatalf("Diff(%v, %v) = %+v applies to %v", a, b, edits, got)
		}
		if lcs := len(a) + len(b) - len(edits); lcs%2 != 0 {
			t.Fatalf("Diff(%v, %v): odd edit count %d", a, b, len(edits))
		}
	}
}

func TestDiffIsMinimal(t *testing.T) {
	tests := []struct {
		a, b []string
		want int
	}{
		{[]string{"a", "b", "c", "a", "b", "b", "a"}, []string{"c", "b", "a", "b", "a", "c"}, 5},
		{[]string{"x", "y", "z"}, []string{"x", "w", "z"}, 2},
		{[]string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}, 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.a, "->", tt.b), func(t *testing.T) {
			if got := len(Diff(tt.a, tt.b, eqString)); got != tt.want {
				t.Errorf("edit count: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDiffUsesEqualityFunction(t *testing.T) {
	type row struct{ cols []string }
	eq := func(x, y row) bool { return slices.Equal(x.cols, y.cols) }

	a := []row{{[]string{"a", "1"}}, {[]string{"b", "2"}}}
	b := []row{{[]string{"a", "1"}}, {[]string{"c", "3"}}, {[]string{"b", "2"}}}

	edits := Diff(a, b, eq)
	if len(edits) != 1 || edits[0].Op != OpInsert || edits[0].Index != 1 {
		t.Errorf("Diff: got %+v, want one insertion at 1", edits)
	}
}

func TestOpString(t *testing.T) {
	if OpDelete.String() != "delete" || OpInsert.String() != "insert" || Op(0).String() != "unknown" {
		t.Error("unexpected Op names")
	}
}
