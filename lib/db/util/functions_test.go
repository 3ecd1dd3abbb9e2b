package util

import (
	"strings"
	"testing"
)

// TestPolyHash checks the hash against hand computed values
func TestPolyHash(t *testing.T) {
	tests := []struct {
		key  string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 98 + 97*31},
		{"abc", 99 + (98+97*31)*31},
		{"ba", 97 + 98*31},
		{"é", 233},
		{"键", 0x952e},
		{"aé", 233 + 97*31},
	}

	for _, tt := range tests {
		if got := PolyHash(tt.key); got != tt.want {
			t.Errorf("PolyHash(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

// TestPolyHashDeterministic makes sure the hash is not salted
func TestPolyHashDeterministic(t *testing.T) {
	key := strings.Repeat("deterministic", 100)
	first := PolyHash(key)
	for i := 0; i < 10; i++ {
		if got := PolyHash(key); got != first {
			t.Fatalf("PolyHash returned %d, then %d for the same key", first, got)
		}
	}
}

// TestBucketIndexRange checks that every key lands in [0, n)
func TestBucketIndexRange(t *testing.T) {
	keys := []string{"", "a", "z", "key", strings.Repeat("x", 10_000), "\xff\xfe"}
	for _, n := range []int{1, 2, 4, 7, 1024} {
		for _, key := range keys {
			idx := BucketIndex(key, n)
			if idx < 0 || idx >= n {
				t.Errorf("BucketIndex(%q, %d) = %d, out of range", key, n, idx)
			}
		}
	}
}

// TestBucketIndexCollisions checks known collisions for a small table
func TestBucketIndexCollisions(t *testing.T) {
	// 'a' = 97 and 'e' = 101, both are 1 mod 4
	if BucketIndex("a", 4) != 1 || BucketIndex("e", 4) != 1 {
		t.Errorf("expected 'a' and 'e' to share bucket 1, got %d and %d",
			BucketIndex("a", 4), BucketIndex("e", 4))
	}

	// every key shares the single bucket of a table with capacity 1
	if BucketIndex("anything", 1) != 0 {
		t.Errorf("expected bucket 0 for capacity 1")
	}
}

// TestBucketIndexCodePoints checks that non ASCII keys are bucketed by code point
func TestBucketIndexCodePoints(t *testing.T) {
	// 'é' = 233 = 1 mod 4, its two UTF-8 bytes would give a different bucket
	if got := BucketIndex("é", 4); got != 1 {
		t.Errorf("BucketIndex(%q, 4) = %d, want 1", "é", got)
	}
	if BucketIndex("é", 4) != BucketIndex("a", 4) {
		t.Errorf("expected 'é' and 'a' to share a bucket")
	}
}
