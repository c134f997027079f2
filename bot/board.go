package main

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	rowCount  = 5
	colCount  = 8
	poisonRow = rowCount
	poisonCol = colCount
)

// bitTest[c-1] selects column c; bit 0x80 is column 1.
var bitTest = [colCount]uint8{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}

// Board is the raw ledger representation of a game: one mask per row, a
// set bit meaning the cell has been eaten. The poison glass sits at
// (row 5, col 8).
type Board [rowCount]uint8

// Move is a 1-based (row, column) pair. The zero value (0,0) is the
// cash-out move that concedes the game and closes it.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) IsCashOut() bool {
	return m.Row == 0 && m.Col == 0
}

func (m Move) InDomain() bool {
	if m.IsCashOut() {
		return true
	}
	return m.Row >= 1 && m.Row <= rowCount && m.Col >= 1 && m.Col <= colCount
}

func (m Move) String() string {
	if m.IsCashOut() {
		return "cash-out"
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// IsGlassOnly reports whether only the poison cell remains.
func (b Board) IsGlassOnly() bool {
	for r := 0; r < rowCount-1; r++ {
		if b[r] != 0xFF {
			return false
		}
	}
	return b[rowCount-1] == 0xFE
}

// MoveIsOpen reports whether cell (r,c) has not been eaten yet.
func (b Board) MoveIsOpen(r, c int) bool {
	return b[r-1]&bitTest[c-1] == 0
}

// Apply eats cell (r,c): the c-column prefix of row r and of every row
// before it is removed in one bite. Defined only for open cells; the
// result keeps the per-row prefixes non-increasing from row 1 to row 5.
func (b Board) Apply(r, c int) Board {
	prefix := uint8(0xFF) << (colCount - c)
	next := b
	for row := 0; row < r; row++ {
		next[row] |= prefix
	}
	return next
}

// PickAnyLegal returns some open cell, scanning row 5 up to row 1 and
// columns left to right. The poison cell is returned only when it is the
// sole open cell left.
func (b Board) PickAnyLegal() (Move, bool) {
	for r := rowCount; r >= 1; r-- {
		for c := 1; c <= colCount; c++ {
			if r == poisonRow && c == poisonCol {
				continue
			}
			if b.MoveIsOpen(r, c) {
				return Move{Row: r, Col: c}, true
			}
		}
	}
	if b.MoveIsOpen(poisonRow, poisonCol) {
		return Move{Row: poisonRow, Col: poisonCol}, true
	}
	return Move{}, false
}

// ToSkyline counts the leading eaten run of every row.
func (b Board) ToSkyline() Skyline {
	var s Skyline
	for i, mask := range b {
		s[i] = uint8(bits.LeadingZeros8(^mask))
	}
	return s
}

func (b Board) String() string {
	var sb strings.Builder
	for i, row := range b {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "row%d: %08b", i+1, row)
	}
	return sb.String()
}
