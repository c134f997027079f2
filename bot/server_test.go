package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	controller := NewGameController()
	hub := NewHub()
	done := make(chan struct{})
	go hub.Run(done)
	server := httptest.NewServer(newRouter(controller, hub, NewSolver(LoadedBook())))
	t.Cleanup(func() {
		server.Close()
		close(done)
	})
	return server
}

func getBoard(t *testing.T, server *httptest.Server) boardResponse {
	t.Helper()
	resp, err := http.Get(server.URL + "/api/board")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload boardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func postMove(t *testing.T, server *httptest.Server, move moveRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(move)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+"/api/move", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestServerBoardLifecycle(t *testing.T) {
	server := newTestServer(t)

	status := getBoard(t, server)
	assert.False(t, status.Exists)
	assert.Equal(t, "missing", status.Status)

	resp := postMove(t, server, moveRequest{Row: 3, Col: 4})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status = getBoard(t, server)
	require.True(t, status.Exists)
	assert.Equal(t, Board{0xF0, 0xF0, 0xF0, 0x00, 0x00}, status.Rows)
	assert.Equal(t, 1, status.MoveCount)
	require.Len(t, status.History, 1)
	assert.Equal(t, 1, status.History[0].Mover)

	resp = postMove(t, server, moveRequest{Row: 9, Col: 9})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errPayload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errPayload))
	resp.Body.Close()
	assert.NotEmpty(t, errPayload.Error)

	resp, err := http.Post(server.URL+"/api/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, getBoard(t, server).Exists)
}

func TestServerGlassEndsGame(t *testing.T) {
	server := newTestServer(t)

	resp := postMove(t, server, moveRequest{Row: 5, Col: 7})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := getBoard(t, server)
	assert.True(t, status.GlassOnly)

	resp = postMove(t, server, moveRequest{Row: 5, Col: 8})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status = getBoard(t, server)
	assert.Equal(t, "finished", status.Status)
	assert.Equal(t, 2, status.GlassEatenBy)
}

func TestServerSuggestAndBook(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/suggest")
	require.NoError(t, err)
	var suggestion suggestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&suggestion))
	resp.Body.Close()
	require.True(t, suggestion.Found)
	assert.Equal(t, "winning", suggestion.Verdict)
	assert.GreaterOrEqual(t, suggestion.Row, 1)
	assert.LessOrEqual(t, suggestion.Row, rowCount)
	assert.GreaterOrEqual(t, suggestion.Col, 1)
	assert.LessOrEqual(t, suggestion.Col, colCount)

	resp, err = http.Get(server.URL + "/api/book")
	require.NoError(t, err)
	var stats BookStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	assert.Equal(t, 1287, stats.Classified)
	assert.Equal(t, tableSize, stats.TableSize)
}

func TestGameClientRoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := NewGameClient(server.URL, 2*time.Second)

	_, exists, err := client.FetchBoard()
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, client.SendMove(Move{Row: 5, Col: 1}))
	board, exists, err := client.FetchBoard()
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, Board{0x80, 0x80, 0x80, 0x80, 0x80}, board)

	err = client.SendMove(Move{Row: 5, Col: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")

	require.NoError(t, client.Reset())
	_, exists, err = client.FetchBoard()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWebsocketBroadcastsBoard(t *testing.T) {
	server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "board", msg.Type)
	var initial boardResponse
	require.NoError(t, json.Unmarshal(msg.Payload, &initial))
	assert.False(t, initial.Exists)

	moveResp := postMove(t, server, moveRequest{Row: 5, Col: 1})
	moveResp.Body.Close()
	require.Equal(t, http.StatusOK, moveResp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "board", msg.Type)
	var updated boardResponse
	require.NoError(t, json.Unmarshal(msg.Payload, &updated))
	assert.True(t, updated.Exists)
	assert.Equal(t, Board{0x80, 0x80, 0x80, 0x80, 0x80}, updated.Rows)
}
