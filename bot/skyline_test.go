package main

import (
	"math/rand"
	"sort"
	"testing"
)

func allValidSkylines() []Skyline {
	all := make([]Skyline, 0, 1287)
	for a := 0; a <= colCount; a++ {
		for b := 0; b <= a; b++ {
			for c := 0; c <= b; c++ {
				for d := 0; d <= c; d++ {
					for e := 0; e <= d; e++ {
						all = append(all, Skyline{uint8(a), uint8(b), uint8(c), uint8(d), uint8(e)})
					}
				}
			}
		}
	}
	return all
}

func TestSkylineRoundTripCases(t *testing.T) {
	cases := []Skyline{
		{8, 8, 8, 8, 8},
		{8, 8, 8, 8, 7},
		{8, 8, 8, 8, 0},
		{8, 8, 8, 0, 0},
		{0, 0, 0, 0, 0},
		{4, 3, 2, 1, 0},
		{8, 6, 4, 2, 0},
	}
	for _, skyline := range cases {
		if got := DecodeSkyline(skyline.Encode()); got != skyline {
			t.Fatalf("round trip mismatch: %v -> %d -> %v", skyline, skyline.Encode(), got)
		}
	}
}

func TestSkylineBijectionOverAllValid(t *testing.T) {
	all := allValidSkylines()
	if len(all) != 1287 {
		t.Fatalf("expected 1287 valid skylines, enumerated %d", len(all))
	}
	seen := make(map[int]Skyline, len(all))
	for _, skyline := range all {
		idx := skyline.Encode()
		if idx < 0 || idx >= tableSize {
			t.Fatalf("encode out of range: %v -> %d", skyline, idx)
		}
		if prev, dup := seen[idx]; dup {
			t.Fatalf("collision at %d: %v and %v", idx, prev, skyline)
		}
		seen[idx] = skyline
		if got := DecodeSkyline(idx); got != skyline {
			t.Fatalf("decode mismatch at %d: got %v want %v", idx, got, skyline)
		}
	}
}

func TestSkylineRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		parts := []int{rng.Intn(9), rng.Intn(9), rng.Intn(9), rng.Intn(9), rng.Intn(9)}
		sort.Sort(sort.Reverse(sort.IntSlice(parts)))
		var skyline Skyline
		for j, part := range parts {
			skyline[j] = uint8(part)
		}
		if got := DecodeSkyline(skyline.Encode()); got != skyline {
			t.Fatalf("round trip mismatch: %v -> %v", skyline, got)
		}
	}
}

func TestEncodePanicsOnOutOfDomainSkyline(t *testing.T) {
	cases := []Skyline{
		{1, 2, 3, 4, 5},
		{9, 8, 8, 8, 8},
		{8, 8, 9, 0, 0},
		{0, 0, 0, 0, 1},
	}
	for _, skyline := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for %v", skyline)
				}
			}()
			skyline.Encode()
		}()
	}
}

func TestEatGrowsLeadingPrefixes(t *testing.T) {
	start := Skyline{5, 3, 2, 2, 0}
	got := start.Eat(2, 6)
	want := Skyline{6, 6, 6, 2, 0}
	if got != want {
		t.Fatalf("eat mismatch: got %v want %v", got, want)
	}
	if !got.Valid() {
		t.Fatalf("eat broke monotonicity: %v", got)
	}
}
