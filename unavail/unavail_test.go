package unavail

import (
	"reflect"
	"testing"
)

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b", "a"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupe = %v, want %v", got, want)
	}

	// A payload listing one slot three times owns exactly one slot; the
	// ownership check compares against the distinct count, not the raw
	// request length.
	if len(dedupe([]string{"s1", "s1", "s1"})) != 1 {
		t.Fatal("repeated ids must collapse to one")
	}

	if got := dedupe(nil); len(got) != 0 {
		t.Fatalf("nil input must give empty output, got %v", got)
	}
}
