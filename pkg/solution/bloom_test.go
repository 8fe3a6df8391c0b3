package solution

import "testing"

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	b := newBloomFilter(100, 0.01)
	keys := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		keys = append(keys, string(rune('a'+i%26))+string(rune(i)))
	}
	for _, k := range keys {
		b.insert(k)
	}
	for _, k := range keys {
		if !b.maybeContains(k) {
			t.Fatalf("maybeContains(%q) = false after insert; false negatives are not allowed", k)
		}
	}
}

func TestBloomFilterAbsentKeyCanMiss(t *testing.T) {
	b := newBloomFilter(10, 0.01)
	b.insert("present")
	if b.maybeContains("definitely-not-inserted") {
		// A false positive is possible but astronomically unlikely for a
		// single never-inserted key against one entry; if this ever
		// flakes, the sizing math needs revisiting.
		t.Skip("false positive on an uncontended filter, sizing may need review")
	}
}

func TestBloomFilterSizingNeverPanics(t *testing.T) {
	for _, n := range []int{0, -1, 1, 1000} {
		b := newBloomFilter(n, 0.01)
		b.insert("x")
		if !b.maybeContains("x") {
			t.Fatalf("maybeContains after insert failed for itemCount=%d", n)
		}
	}
}
