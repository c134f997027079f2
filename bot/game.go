package main

import (
	"fmt"
	"time"
)

type GameStatus int

const (
	// StatusMissing means no game account exists: nothing was created
	// yet, or a cash-out closed it.
	StatusMissing GameStatus = iota
	StatusRunning
	StatusFinished
)

func (s GameStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "missing"
	}
}

type HistoryEntry struct {
	Move      Move
	Mover     int
	ElapsedMs float64
}

// Game is the practice stand-in for the on-chain game account: it does
// not exist until the first move creates it, alternating movers eat
// cells, eating the glass ends the game, and a cash-out closes the
// account again.
type Game struct {
	board      Board
	status     GameStatus
	history    []HistoryEntry
	glassEater int
	turnStart  time.Time
}

func NewGame() Game {
	return Game{status: StatusMissing, turnStart: time.Now()}
}

// Board returns the raw board and whether a game exists at all.
func (g *Game) Board() (Board, bool) {
	if g.status == StatusMissing {
		return Board{}, false
	}
	return g.board, true
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) MoveCount() int {
	return len(g.history)
}

// GlassEater is the mover (1 or 2) who ate the poison glass and lost, or
// 0 while nobody has.
func (g *Game) GlassEater() int {
	return g.glassEater
}

func (g *Game) History() []HistoryEntry {
	return append([]HistoryEntry(nil), g.history...)
}

func (g *Game) Reset() {
	g.board = Board{}
	g.status = StatusMissing
	g.history = nil
	g.glassEater = 0
	g.turnStart = time.Now()
}

// TryApplyMove validates and applies one move. The first move of a
// missing game creates it; a cash-out closes it.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if !move.InDomain() {
		return false, "row in 1..5 and col in 1..8, or (0,0) to cash out"
	}
	if g.status == StatusFinished {
		return false, "game already finished"
	}
	if move.IsCashOut() {
		if g.status == StatusMissing {
			return false, "no game to cash out"
		}
		g.Reset()
		return true, ""
	}
	if g.status == StatusMissing {
		g.board = Board{}
		g.status = StatusRunning
		g.history = nil
		g.glassEater = 0
		g.turnStart = time.Now()
	}
	if !g.board.MoveIsOpen(move.Row, move.Col) {
		return false, fmt.Sprintf("cell %s already eaten", move)
	}
	elapsed := float64(time.Since(g.turnStart).Milliseconds())
	mover := len(g.history)%2 + 1
	ateGlass := move.Row == poisonRow && move.Col == poisonCol
	g.board = g.board.Apply(move.Row, move.Col)
	g.history = append(g.history, HistoryEntry{Move: move, Mover: mover, ElapsedMs: elapsed})
	g.turnStart = time.Now()
	if ateGlass {
		g.status = StatusFinished
		g.glassEater = mover
	}
	return true, ""
}
