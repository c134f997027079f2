package main

import (
	"fmt"
	"log"
	"time"
)

func logBoard(tag string, b Board) {
	log.Printf("[bot] %s:", tag)
	for i, row := range b {
		log.Printf("[bot]   row%d: %08b", i+1, row)
	}
}

// openingMove picks the first move of a fresh game.
func openingMove(solver *Solver) Move {
	if move, ok := solver.BestMove(Board{}); ok {
		return move
	}
	return Move{Row: 5, Col: 1}
}

// runAutoplay keeps choosing and submitting moves until the game ends,
// the move cap is hit, or no move remains.
func runAutoplay(solver *Solver, source BoardSource, sink MoveSink, cfg Config) error {
	log.Printf("[bot] autoplay on (interval=%dms, max_moves=%d, init_if_missing=%t)",
		cfg.IntervalMs, cfg.MaxMoves, cfg.InitIfMissing)
	interval := time.Duration(cfg.IntervalMs) * time.Millisecond
	movesSent := 0
	for {
		board, exists, err := source.FetchBoard()
		if err != nil {
			return fmt.Errorf("fetch board: %w", err)
		}
		if !exists {
			if !cfg.InitIfMissing {
				log.Printf("[bot] no game found - stopping autoplay")
				break
			}
			opening := openingMove(solver)
			log.Printf("[bot] no game found - opening a new one with %s", opening)
			if err := sink.SendMove(opening); err != nil {
				return fmt.Errorf("send opening: %w", err)
			}
			movesSent++
			time.Sleep(interval)
			continue
		}
		logBoard("board", board)
		if board.IsGlassOnly() {
			log.Printf("[bot] only glass remains - game over")
			break
		}

		move, ok := solver.BestMove(board)
		if !ok {
			log.Printf("[bot] no move available - stopping")
			break
		}
		log.Printf("[bot] chosen: %s", move)
		if err := sink.SendMove(move); err != nil {
			return fmt.Errorf("send move: %w", err)
		}
		movesSent++
		if movesSent >= cfg.MaxMoves {
			log.Printf("[bot] reached max_moves=%d - stopping", cfg.MaxMoves)
			break
		}
		time.Sleep(interval)
	}

	if board, exists, err := source.FetchBoard(); err == nil && exists {
		logBoard("final", board)
	} else {
		log.Printf("[bot] final board: game missing or closed")
	}
	return nil
}

// runSingleMove plays exactly one move: an explicit (r,c) if given, the
// cash-out if asked for, otherwise the solver's choice.
func runSingleMove(solver *Solver, source BoardSource, sink MoveSink, cfg Config, explicit *Move, cashOut bool) error {
	board, exists, err := source.FetchBoard()
	if err != nil {
		return fmt.Errorf("fetch board: %w", err)
	}
	if !exists {
		if !cfg.InitIfMissing {
			log.Printf("[bot] game missing or closed - aborting")
			return nil
		}
		opening := openingMove(solver)
		log.Printf("[bot] no game found - starting a new one with %s", opening)
		if err := sink.SendMove(opening); err != nil {
			return fmt.Errorf("send opening: %w", err)
		}
		if updated, ok, err := source.FetchBoard(); err == nil && ok {
			logBoard("new board", updated)
		}
		return nil
	}

	logBoard("current", board)
	if board.IsGlassOnly() {
		log.Printf("[bot] only glass remains - game ended")
		return nil
	}

	var move Move
	switch {
	case cashOut:
		move = Move{}
	case explicit != nil:
		move = *explicit
	default:
		chosen, ok := solver.BestMove(board)
		if !ok {
			log.Printf("[bot] no move available")
			return nil
		}
		move = chosen
	}

	log.Printf("[bot] chosen move: %s", move)
	if err := sink.SendMove(move); err != nil {
		return fmt.Errorf("send move: %w", err)
	}
	if updated, ok, err := source.FetchBoard(); err == nil && ok {
		logBoard("updated", updated)
	} else {
		log.Printf("[bot] game closed after our move")
	}
	return nil
}

// runReset cashes out any running game and waits, bounded, for it to be
// gone.
func runReset(client *GameClient) error {
	log.Printf("[bot] reset requested: checking current game")
	_, exists, err := client.FetchBoard()
	if err != nil {
		return fmt.Errorf("fetch board: %w", err)
	}
	if !exists {
		log.Printf("[bot] no existing game - already fresh")
		return nil
	}

	log.Printf("[bot] closing game with cash-out %s", Move{})
	if err := client.SendMove(Move{}); err != nil {
		return fmt.Errorf("send cash-out: %w", err)
	}
	for i := 0; i < 20; i++ {
		time.Sleep(500 * time.Millisecond)
		if _, exists, err := client.FetchBoard(); err == nil && !exists {
			log.Printf("[bot] game closed (%d checks), fresh start ready", i+1)
			return nil
		}
	}
	log.Printf("[bot] game still present after waiting - continuing anyway")
	return nil
}
