package diag

import (
	"math"
	"testing"
)

func errorDiag(msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: SemaTypeMismatch, Message: msg}
}

func TestAddHonorsLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(errorDiag("one")) || !b.Add(errorDiag("two")) {
		t.Fatal("adds under the limit must succeed")
	}
	if b.Add(errorDiag("three")) {
		t.Fatal("add past the limit must report the drop")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestMergeGrowsLimit(t *testing.T) {
	b := NewBag(1)
	b.Add(errorDiag("kept"))

	other := NewBag(4)
	for i := 0; i < 4; i++ {
		other.Add(errorDiag("merged"))
	}
	b.Merge(other)

	if b.Len() != 5 {
		t.Fatalf("len = %d, want 5", b.Len())
	}
	if b.Cap() < 5 {
		t.Fatalf("cap = %d, must cover the merged items", b.Cap())
	}
	if !b.Add(errorDiag("after")) {
		t.Fatal("merge must leave no headroom deficit for the merged count")
	}
}

func TestMergeClampsHugeTotals(t *testing.T) {
	other := NewBag(40000)
	for i := 0; i < 40000; i++ {
		other.Add(errorDiag("bulk"))
	}

	b := NewBag(1)
	b.Merge(other)
	b.Merge(other)

	if b.Len() != 80000 {
		t.Fatalf("len = %d, want 80000", b.Len())
	}
	// The limit saturates instead of wrapping, so nothing already collected
	// can push the cap below the item count.
	if b.Cap() != math.MaxUint16 {
		t.Fatalf("cap = %d, want %d", b.Cap(), math.MaxUint16)
	}
}
