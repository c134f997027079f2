package main

import "sync"

// GameController serializes access to the practice game for the HTTP
// handlers and the websocket hub.
type GameController struct {
	mu   sync.Mutex
	game Game
}

func NewGameController() *GameController {
	return &GameController{game: NewGame()}
}

func (gc *GameController) ApplyMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) Board() (Board, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Board()
}

func (gc *GameController) Status() GameStatus {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Status()
}

func (gc *GameController) MoveCount() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.MoveCount()
}

func (gc *GameController) GlassEater() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.GlassEater()
}

func (gc *GameController) History() []HistoryEntry {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) Reset() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset()
}
