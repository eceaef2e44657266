package collections

import (
	"sort"
	"testing"
)

func TestSetEqual(t *testing.T) {
	tests := []struct {
		name  string
		left  Set[int]
		right Set[int]
		want  bool
	}{
		{"both empty", NewSet[int](), NewSet[int](), true},
		{"same elements", NewSet(1, 2, 3), NewSet(3, 2, 1), true},
		{"subset", NewSet(1, 2), NewSet(1, 2, 3), false},
		{"same size, different elements", NewSet(1, 2), NewSet(1, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.left.Equal(tt.right); got != tt.want {
				t.Fatalf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetDifference(t *testing.T) {
	diff := NewSet(1, 2, 3, 4).Difference(NewSet(2, 4, 5))

	values := diff.Values()
	sort.Ints(values)
	if len(values) != 2 || values[0] != 1 || values[1] != 3 {
		t.Fatalf("Difference() = %v, want [1 3]", values)
	}
}

func TestSetClear(t *testing.T) {
	set := NewSet("a", "b")
	set.Clear()
	if set.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", set.Len())
	}

	set.Add("c")
	if !set.Contains("c") {
		t.Fatal("set unusable after Clear")
	}

	set.Remove("c")
	set.Remove("missing")
	if set.Len() != 0 {
		t.Fatalf("Len() = %d after Remove, want 0", set.Len())
	}
}
