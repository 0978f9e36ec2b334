package partition

import (
	"errors"
	"testing"
)

func sum(categories []Category) int {
	total := 0
	for _, c := range categories {
		total += c.Count
	}
	return total
}

func TestSplitExactSum(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, total := range []int{0, 1, 6, 7, 8, 100, 3065, 999999} {
		got, err := Split(total, names)
		if err != nil {
			t.Fatalf("Split(%d) returned error: %v", total, err)
		}
		if s := sum(got); s != total {
			t.Fatalf("Split(%d): counts sum to %d", total, s)
		}
	}
}

func TestSplitCountsDifferByAtMostOne(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	got, err := Split(12345, names)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	minCount, maxCount := got[0].Count, got[0].Count
	for _, c := range got {
		minCount = min(minCount, c.Count)
		maxCount = max(maxCount, c.Count)
	}
	if maxCount-minCount > 1 {
		t.Fatalf("counts differ by %d, want at most 1", maxCount-minCount)
	}
}

func TestSplit3065AcrossTen(t *testing.T) {
	names := []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"}
	got, err := Split(3065, names)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	for i, c := range got {
		want := 306
		if i < 5 {
			want = 307
		}
		if c.Count != want {
			t.Fatalf("category %d: count %d, want %d", i, c.Count, want)
		}
		if c.Ordinal != i {
			t.Fatalf("category %d: ordinal %d", i, c.Ordinal)
		}
	}
	if s := sum(got); s != 3065 {
		t.Fatalf("counts sum to %d, want 3065", s)
	}
}

func TestSplitZeroTotal(t *testing.T) {
	got, err := Split(0, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	for _, c := range got {
		if c.Count != 0 {
			t.Fatalf("category %q: count %d, want 0", c.Name, c.Count)
		}
	}
}

func TestSplitEmptyCategories(t *testing.T) {
	if _, err := Split(10, nil); !errors.Is(err, ErrNoCategories) {
		t.Fatalf("Split(10, nil) error = %v, want ErrNoCategories", err)
	}
}

func TestCounts(t *testing.T) {
	categories, err := Split(5, []string{"x", "y"})
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	counts := Counts(categories)
	if counts["x"] != 3 || counts["y"] != 2 {
		t.Fatalf("Counts = %v, want x:3 y:2", counts)
	}
}
