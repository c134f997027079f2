package main

import "testing"

func TestBestMoveOnEmptyBoard(t *testing.T) {
	solver := NewSolver(LoadedBook())
	move, ok := solver.BestMove(Board{})
	if !ok {
		t.Fatalf("empty board must have a move")
	}
	if move.Row < 1 || move.Row > rowCount || move.Col < 1 || move.Col > colCount {
		t.Fatalf("move %v out of bounds", move)
	}
}

func TestGlassOnlyHasNoMove(t *testing.T) {
	solver := NewSolver(LoadedBook())
	if move, ok := solver.BestMove(Board{0xFF, 0xFF, 0xFF, 0xFF, 0xFE}); ok {
		t.Fatalf("glass-only board returned %v, want no move", move)
	}
}

func TestSolverPrefersLastColumnWhenOnlyOption(t *testing.T) {
	board := Board{0xFE, 0xFE, 0xFE, 0xFE, 0xFE}
	solver := NewSolver(LoadedBook())
	move, ok := solver.BestMove(board)
	if !ok {
		t.Fatalf("expected a move")
	}
	if move.Col != 8 {
		t.Fatalf("move %v, want column 8", move)
	}
}

func TestBestMoveDeterministic(t *testing.T) {
	solver := NewSolver(LoadedBook())
	board := Board{0xE0, 0xC0, 0x80, 0x00, 0x00}
	first, ok := solver.BestMove(board)
	if !ok {
		t.Fatalf("expected a move")
	}
	for i := 0; i < 10; i++ {
		if again, ok := solver.BestMove(board); !ok || again != first {
			t.Fatalf("call %d returned %v ok=%t, want %v", i, again, ok, first)
		}
	}
}

func TestBestMoveFallsBackOnLosingPositions(t *testing.T) {
	solver := NewSolver(LoadedBook())
	for _, skyline := range allValidSkylines() {
		if solver.book.Classify(skyline) != outcomeLosing {
			continue
		}
		if skyline == (Skyline{8, 8, 8, 8, 7}) {
			continue
		}
		var board Board
		for i, part := range skyline {
			if part > 0 {
				board[i] = uint8(0xFF) << (colCount - part)
			}
		}
		move, ok := solver.BestMove(board)
		if !ok {
			t.Fatalf("losing board %v must still offer a legal move", skyline)
		}
		if !board.MoveIsOpen(move.Row, move.Col) {
			t.Fatalf("fallback %v on %v is not open", move, skyline)
		}
	}
}

func TestForcedVictoryAgreesWithClassification(t *testing.T) {
	solver := NewSolver(LoadedBook())
	board := Board{}
	if _, ok := solver.ForcedVictory(board); !ok {
		t.Fatalf("empty board must have a forced victory")
	}
	if got := solver.Classify(board); got != outcomeWinning {
		t.Fatalf("empty board classified %v, want winning", got)
	}
}
