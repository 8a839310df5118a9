package history

import (
	"fmt"
	"testing"

	"simlab/types"
)

func record(text string) types.ComparisonRecord {
	return types.ComparisonRecord{TextA: text, TextB: text}
}

func TestAppendAndRecent(t *testing.T) {
	b := New(3)
	b.Append(record("first"))
	b.Append(record("second"))
	b.Append(record("third"))

	recent := b.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	if recent[0].TextA != "third" || recent[2].TextA != "first" {
		t.Errorf("expected most-recent-first order, got %q ... %q", recent[0].TextA, recent[2].TextA)
	}
}

func TestFIFOEviction(t *testing.T) {
	b := New(50)
	for i := 0; i < 51; i++ {
		b.Append(record(fmt.Sprintf("text-%d", i)))
	}

	if b.Len() != 50 {
		t.Fatalf("expected 50 records after 51 appends, got %d", b.Len())
	}
	recent := b.Recent()
	if recent[0].TextA != "text-50" {
		t.Errorf("newest record missing, got %q", recent[0].TextA)
	}
	oldest := recent[len(recent)-1]
	if oldest.TextA != "text-1" {
		t.Errorf("expected text-0 evicted, oldest is %q", oldest.TextA)
	}
}

func TestSequenceNumbers(t *testing.T) {
	b := New(2)
	r0 := b.Append(record("a"))
	r1 := b.Append(record("b"))
	r2 := b.Append(record("c"))

	if r0.Seq != 0 || r1.Seq != 1 || r2.Seq != 2 {
		t.Errorf("unexpected sequence numbers %d, %d, %d", r0.Seq, r1.Seq, r2.Seq)
	}

	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer after Clear, got %d", b.Len())
	}
	r3 := b.Append(record("d"))
	if r3.Seq != 3 {
		t.Errorf("sequence should continue after Clear, got %d", r3.Seq)
	}
}

func TestDefaultCapacity(t *testing.T) {
	b := New(0)
	if b.Capacity() != DefaultCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultCapacity, b.Capacity())
	}
}

func TestRecentReturnsCopy(t *testing.T) {
	b := New(3)
	b.Append(record("a"))
	recent := b.Recent()
	recent[0].TextA = "mutated"
	if b.Recent()[0].TextA != "a" {
		t.Error("Recent must return a copy, not a view")
	}
}
