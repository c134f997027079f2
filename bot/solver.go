package main

// Solver combines the position table with the legal-move fallback: play
// the forced win when one exists, otherwise keep the game going with any
// open cell rather than abstain.
type Solver struct {
	book *PositionTable
}

func NewSolver(book *PositionTable) *Solver {
	return &Solver{book: book}
}

// BestMove picks the move for the current player. ok is false only when
// no move should be sent at all: the board is glass-only or nothing is
// open. The poison cell can be returned only when it is the last open
// cell.
func (s *Solver) BestMove(b Board) (Move, bool) {
	if b.IsGlassOnly() {
		return Move{}, false
	}
	if move, ok := s.book.BestReply(b.ToSkyline()); ok {
		return move, true
	}
	return b.PickAnyLegal()
}

// ForcedVictory returns the table's winning reply without the fallback.
func (s *Solver) ForcedVictory(b Board) (Move, bool) {
	return s.book.BestReply(b.ToSkyline())
}

// Classify exposes the raw table verdict for the board.
func (s *Solver) Classify(b Board) outcome {
	return s.book.Classify(b.ToSkyline())
}
