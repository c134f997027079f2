// arena pits the practice server's solver against a random mover over
// plain HTTP, playing a batch of games and reporting how they ended.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	rowCount = 5
	colCount = 8
)

type boardResponse struct {
	Exists       bool            `json:"exists"`
	Rows         [rowCount]uint8 `json:"rows"`
	GlassOnly    bool            `json:"glass_only"`
	Status       string          `json:"status"`
	MoveCount    int             `json:"move_count"`
	GlassEatenBy int             `json:"glass_eaten_by"`
}

type suggestResponse struct {
	Found   bool   `json:"found"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Verdict string `json:"verdict"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type arena struct {
	client   *http.Client
	baseURL  string
	logger   *log.Logger
	rng      *rand.Rand
	interval time.Duration
}

func main() {
	var (
		flagServer     = flag.String("server", "http://127.0.0.1:8080", "Practice server base URL")
		flagGames      = flag.Int("games", 20, "Number of games to play")
		flagIntervalMs = flag.Int("interval_ms", 0, "Delay between moves in milliseconds")
		flagSeed       = flag.Int64("seed", 0, "Random seed for the random mover (0 = time-based)")
	)
	flag.Parse()

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a := &arena{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  strings.TrimRight(*flagServer, "/"),
		logger:   log.New(os.Stdout, "[arena] ", log.LstdFlags),
		rng:      rand.New(rand.NewSource(seed)),
		interval: time.Duration(*flagIntervalMs) * time.Millisecond,
	}

	a.logger.Printf("playing %d games against %s (seed=%d)", *flagGames, a.baseURL, seed)
	solverWins := 0
	totalMoves := 0
	for game := 0; game < *flagGames; game++ {
		// Alternate who opens so the solver defends both parities.
		solverSide := game%2 + 1
		moves, glassEater, err := a.playGame(solverSide)
		if err != nil {
			a.logger.Fatalf("game %d failed: %v", game+1, err)
		}
		totalMoves += moves
		won := glassEater != 0 && glassEater != solverSide
		if won {
			solverWins++
		}
		a.logger.Printf("game %d: solver as mover %d, %d moves, glass eaten by mover %d, solver won=%t",
			game+1, solverSide, moves, glassEater, won)
	}
	a.logger.Printf("done: solver won %d/%d games, %.1f moves per game",
		solverWins, *flagGames, float64(totalMoves)/float64(*flagGames))
}

// playGame runs one game to the end and reports its length and who ate
// the glass.
func (a *arena) playGame(solverSide int) (int, int, error) {
	if err := a.reset(); err != nil {
		return 0, 0, err
	}
	for {
		board, err := a.fetchBoard()
		if err != nil {
			return 0, 0, err
		}
		if board.Status == "finished" {
			return board.MoveCount, board.GlassEatenBy, nil
		}
		if board.GlassOnly {
			// The side to move has lost; eat the glass to close out.
			if err := a.sendMove(moveRequest{Row: rowCount, Col: colCount}); err != nil {
				return board.MoveCount, 0, err
			}
			continue
		}
		sideToMove := board.MoveCount%2 + 1

		var move moveRequest
		if sideToMove == solverSide {
			suggestion, err := a.fetchSuggestion()
			if err != nil {
				return 0, 0, err
			}
			if !suggestion.Found {
				return board.MoveCount, board.GlassEatenBy, fmt.Errorf("solver found no move mid-game")
			}
			move = moveRequest{Row: suggestion.Row, Col: suggestion.Col}
		} else {
			picked, ok := a.randomMove(board)
			if !ok {
				return board.MoveCount, board.GlassEatenBy, fmt.Errorf("random mover found no move mid-game")
			}
			move = picked
		}
		if err := a.sendMove(move); err != nil {
			return 0, 0, err
		}
		if a.interval > 0 {
			time.Sleep(a.interval)
		}
	}
}

// randomMove picks a uniformly random open cell, taking the glass only
// when nothing else is left.
func (a *arena) randomMove(board boardResponse) (moveRequest, bool) {
	open := make([]moveRequest, 0, rowCount*colCount)
	for r := 1; r <= rowCount; r++ {
		for c := 1; c <= colCount; c++ {
			if r == rowCount && c == colCount {
				continue
			}
			if board.Rows[r-1]&(0x80>>(c-1)) == 0 {
				open = append(open, moveRequest{Row: r, Col: c})
			}
		}
	}
	if len(open) > 0 {
		return open[a.rng.Intn(len(open))], true
	}
	if board.Rows[rowCount-1]&0x01 == 0 {
		return moveRequest{Row: rowCount, Col: colCount}, true
	}
	return moveRequest{}, false
}

func (a *arena) fetchBoard() (boardResponse, error) {
	var payload boardResponse
	err := a.getJSON("/api/board", &payload)
	return payload, err
}

func (a *arena) fetchSuggestion() (suggestResponse, error) {
	var payload suggestResponse
	err := a.getJSON("/api/suggest", &payload)
	return payload, err
}

func (a *arena) sendMove(move moveRequest) error {
	body, err := json.Marshal(move)
	if err != nil {
		return err
	}
	resp, err := a.client.Post(a.baseURL+"/api/move", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			return fmt.Errorf("move (%d,%d) rejected: %s", move.Row, move.Col, payload.Error)
		}
		return fmt.Errorf("move (%d,%d) rejected: status %s", move.Row, move.Col, resp.Status)
	}
	return nil
}

func (a *arena) reset() error {
	resp, err := a.client.Post(a.baseURL+"/api/reset", "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reset: unexpected status %s", resp.Status)
	}
	return nil
}

func (a *arena) getJSON(path string, payload any) error {
	resp, err := a.client.Get(a.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(payload)
}
