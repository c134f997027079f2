package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BoardSource supplies the current raw board, or reports that no game
// exists yet.
type BoardSource interface {
	FetchBoard() (Board, bool, error)
}

// MoveSink durably commits a chosen move and reports acceptance.
type MoveSink interface {
	SendMove(move Move) error
}

// GameClient talks to a practice server (or any compatible board
// front-end) over HTTP. It implements both collaborators.
type GameClient struct {
	baseURL string
	client  *http.Client
}

func NewGameClient(baseURL string, timeout time.Duration) *GameClient {
	return &GameClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GameClient) FetchBoard() (Board, bool, error) {
	resp, err := g.client.Get(g.baseURL + "/api/board")
	if err != nil {
		return Board{}, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Board{}, false, fmt.Errorf("board fetch: unexpected status %s", resp.Status)
	}
	var payload boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Board{}, false, err
	}
	if !payload.Exists {
		return Board{}, false, nil
	}
	return payload.Rows, true, nil
}

func (g *GameClient) SendMove(move Move) error {
	body, err := json.Marshal(moveRequest{Row: move.Row, Col: move.Col})
	if err != nil {
		return err
	}
	resp, err := g.client.Post(g.baseURL+"/api/move", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			return fmt.Errorf("move %s rejected: %s", move, payload.Error)
		}
		return fmt.Errorf("move %s rejected: status %s", move, resp.Status)
	}
	return nil
}

// Reset asks the server to drop the current game.
func (g *GameClient) Reset() error {
	resp, err := g.client.Post(g.baseURL+"/api/reset", "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reset: unexpected status %s", resp.Status)
	}
	return nil
}
