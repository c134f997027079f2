package main

import (
	"log"
	"sync"
	"time"
)

type outcome uint8

const (
	outcomeUnexplored outcome = iota
	outcomeWinning
	outcomeWonGame
	outcomeLosing
)

func (o outcome) String() string {
	switch o {
	case outcomeWinning:
		return "winning"
	case outcomeWonGame:
		return "won-game"
	case outcomeLosing:
		return "losing"
	default:
		return "unexplored"
	}
}

// bookEntry classifies one skyline index. For a winning entry, row is the
// 0-based row and col the column of the reply that forces the win.
// outcomeWonGame marks the fully-eaten board: the game is already over and
// no further move exists, which is distinct from "this move wins".
type bookEntry struct {
	out outcome
	row uint8
	col uint8
}

// PositionTable is the complete win/loss classification of every
// reachable position, indexed by Skyline.Encode. It is built once and
// read-only afterwards.
type PositionTable struct {
	book [tableSize]bookEntry
}

type BookStats struct {
	Classified int `json:"classified"`
	Winning    int `json:"winning"`
	Losing     int `json:"losing"`
	TableSize  int `json:"table_size"`
}

var (
	bookOnce   sync.Once
	sharedBook *PositionTable
)

// LoadedBook returns the process-wide table, building it on first use.
// Concurrent callers block until the first build completes; every later
// call is a plain read.
func LoadedBook() *PositionTable {
	bookOnce.Do(func() {
		start := time.Now()
		sharedBook = NewPositionTable()
		stats := sharedBook.Stats()
		log.Printf("[book] classified %d positions (%d winning, %d losing) in %s",
			stats.Classified, stats.Winning, stats.Losing, time.Since(start).Round(time.Millisecond))
	})
	return sharedBook
}

type successor struct {
	idx      int
	row, col uint8
}

// successors enumerates the legal moves of a skyline in classification
// order: smallest row first, then smallest column.
func successors(s Skyline) []successor {
	succs := make([]successor, 0, rowCount*colCount)
	for r := uint8(0); r < rowCount; r++ {
		for c := s[r] + 1; c <= colCount; c++ {
			succs = append(succs, successor{idx: s.Eat(r, c).Encode(), row: r, col: c})
		}
	}
	return succs
}

// NewPositionTable classifies the whole reachable state space by backward
// induction from the two seeded endings: the fully-eaten board (the
// previous player ate the glass, the game is already won) and the
// glass-only board (the player to move must eat it and loses).
func NewPositionTable() *PositionTable {
	t := &PositionTable{}
	t.book[Skyline{8, 8, 8, 8, 8}.Encode()] = bookEntry{out: outcomeWonGame}
	t.book[Skyline{8, 8, 8, 8, 7}.Encode()] = bookEntry{out: outcomeLosing}

	// Explicit index stack instead of recursion. A node stays below its
	// unexplored successors until all of them are classified; the move
	// graph is acyclic (every bite grows some prefix), so this
	// terminates.
	stack := make([]int, 0, 64)
	stack = append(stack, Skyline{}.Encode())
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		if t.book[idx].out != outcomeUnexplored {
			stack = stack[:len(stack)-1]
			continue
		}
		snapshot := DecodeSkyline(idx)
		pending := false
		for _, succ := range successors(snapshot) {
			if t.book[succ.idx].out == outcomeUnexplored {
				stack = append(stack, succ.idx)
				pending = true
			}
		}
		if pending {
			continue
		}
		stack = stack[:len(stack)-1]
		entry := bookEntry{out: outcomeLosing}
		for _, succ := range successors(snapshot) {
			if t.book[succ.idx].out == outcomeLosing {
				entry = bookEntry{out: outcomeWinning, row: succ.row, col: succ.col}
				break
			}
		}
		t.book[idx] = entry
	}
	return t
}

// Classify returns the verdict stored for a skyline.
func (t *PositionTable) Classify(s Skyline) outcome {
	return t.book[s.Encode()].out
}

// BestReply returns the winning reply for the skyline, if one exists. A
// losing position and the already-won terminal both report no move.
func (t *PositionTable) BestReply(s Skyline) (Move, bool) {
	entry := t.book[s.Encode()]
	if entry.out != outcomeWinning {
		return Move{}, false
	}
	return Move{Row: int(entry.row) + 1, Col: int(entry.col)}, true
}

func (t *PositionTable) Stats() BookStats {
	stats := BookStats{TableSize: tableSize}
	for _, entry := range t.book {
		switch entry.out {
		case outcomeWinning, outcomeWonGame:
			stats.Classified++
			stats.Winning++
		case outcomeLosing:
			stats.Classified++
			stats.Losing++
		}
	}
	return stats
}
