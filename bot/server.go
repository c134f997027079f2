package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type boardResponse struct {
	Exists       bool              `json:"exists"`
	Rows         Board             `json:"rows"`
	GlassOnly    bool              `json:"glass_only"`
	Status       string            `json:"status"`
	MoveCount    int               `json:"move_count"`
	GlassEatenBy int               `json:"glass_eaten_by"`
	History      []historyEntryDTO `json:"history"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type historyEntryDTO struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Mover     int     `json:"mover"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type suggestResponse struct {
	Found   bool   `json:"found"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Verdict string `json:"verdict"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func boardStatus(controller *GameController) boardResponse {
	board, exists := controller.Board()
	history := controller.History()
	dto := make([]historyEntryDTO, 0, len(history))
	for _, entry := range history {
		dto = append(dto, historyEntryDTO{
			Row:       entry.Move.Row,
			Col:       entry.Move.Col,
			Mover:     entry.Mover,
			ElapsedMs: entry.ElapsedMs,
		})
	}
	return boardResponse{
		Exists:       exists,
		Rows:         board,
		GlassOnly:    exists && board.IsGlassOnly(),
		Status:       controller.Status().String(),
		MoveCount:    controller.MoveCount(),
		GlassEatenBy: controller.GlassEater(),
		History:      dto,
	}
}

func newRouter(controller *GameController, hub *Hub, solver *Solver) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/board", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, boardStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload moveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyMove(Move{Row: payload.Row, Col: payload.Col})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		status := boardStatus(controller)
		hub.broadcastBoard <- status
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset()
		status := boardStatus(controller)
		hub.broadcastBoard <- status
		writeJSON(w, http.StatusOK, status)
	})

	r.Get("/api/suggest", func(w http.ResponseWriter, r *http.Request) {
		// Suggest for the current board; a missing game gets the
		// opening suggestion for the empty board.
		board, _ := controller.Board()
		move, ok := solver.BestMove(board)
		writeJSON(w, http.StatusOK, suggestResponse{
			Found:   ok,
			Row:     move.Row,
			Col:     move.Col,
			Verdict: solver.Classify(board).String(),
		})
	})

	r.Get("/api/book", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, solver.book.Stats())
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(boardStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_board":
			client.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(boardStatus(controller))})
		}
	}
}

// runServer hosts the practice game until interrupted.
func runServer(cfg Config) error {
	controller := NewGameController()
	solver := NewSolver(LoadedBook())
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: newRouter(controller, hub, solver),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[server] practice server listening on %s", cfg.ListenAddr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[server] shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}
	return runErr
}
