package main

import (
	"fmt"
	"math/bits"
)

const tableSize = 1 << 16

// Skyline is the eaten-prefix length of every row, non-increasing from
// row 1 down to row 5. It is always derived from a Board, never built by
// hand.
type Skyline [rowCount]uint8

// Valid reports whether every part is in 0..8 and the parts never
// increase.
func (s Skyline) Valid() bool {
	prev := uint8(colCount)
	for _, part := range s {
		if part > prev {
			return false
		}
		prev = part
	}
	return true
}

// Eat advances the skyline by eating column c of 0-based row r: the eaten
// prefix of row r and of every row before it grows to at least c.
func (s Skyline) Eat(r, c uint8) Skyline {
	next := s
	for fill := uint8(0); fill <= r; fill++ {
		if next[fill] < c {
			next[fill] = c
		}
	}
	return next
}

// Encode maps the skyline to its dense table index. Walking the parts
// under a falling ceiling emits one 0-bit per unit of drop and one 1-bit
// per part, the standard bijection between monotone lattice paths and
// fixed-weight bit strings. The table is indexed purely by this value, so
// an out-of-domain skyline panics: only an upstream logic bug can produce
// one.
func (s Skyline) Encode() int {
	if !s.Valid() {
		panic(fmt.Sprintf("skyline out of domain: %v", [rowCount]uint8(s)))
	}
	idx := 0
	ceiling := uint8(colCount)
	for _, part := range s {
		if ceiling > part {
			idx <<= int(ceiling - part)
			ceiling = part
		}
		idx = idx<<1 | 1
	}
	return idx << int(ceiling)
}

// DecodeSkyline inverts Encode. The trailing zero run is row 5's part;
// every further 1-bit closes the next row up, adding the zero run seen
// since the previous one. The argument must be a valid encoding.
func DecodeSkyline(encoded int) Skyline {
	var s Skyline
	s[rowCount-1] = uint8(bits.TrailingZeros32(uint32(encoded)))
	encoded >>= int(s[rowCount-1]) + 1

	zerosSeen := uint8(0)
	cursor := rowCount - 1
	for encoded != 0 {
		if encoded&1 == 1 {
			cursor--
			s[cursor] = s[cursor+1] + zerosSeen
			zerosSeen = 0
		} else {
			zerosSeen++
		}
		encoded >>= 1
	}
	return s
}
