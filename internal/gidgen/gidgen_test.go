package gidgen

import "testing"

func TestNewIsNonZeroAndVaries(t *testing.T) {
	a := New()
	b := New()
	if a.IsZero() {
		t.Fatal("New() returned the zero Gid")
	}
	if a == b {
		t.Fatal("two consecutive New() calls produced the same Gid")
	}
}
