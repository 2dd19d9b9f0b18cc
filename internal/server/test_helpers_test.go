package server

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia/internal/config"
	"trivia/internal/engine"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// testConfig keeps boards small: two categories of two tiles.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.BoardCategories = 2
	cfg.BoardTilesPerCategory = 2
	return cfg
}

func startServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(nil, testConfig())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func expectStatus(t *testing.T, resp *http.Response, status int) map[string]any {
	t.Helper()
	body := decodeBody(t, resp)
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d (%v)", status, resp.StatusCode, body)
	}
	return body
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errBody, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error body, got %#v", body)
	}
	code, _ := errBody["code"].(string)
	return code
}

func createUser(t *testing.T, ts *httptest.Server, name string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/v1/users", "", map[string]string{"display_name": name})
	body := expectStatus(t, resp, http.StatusCreated)
	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("expected token, got %#v", body["token"])
	}
	return token
}

func createGame(t *testing.T, ts *httptest.Server, token string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/v1/games", token, map[string]any{"name": "Friday Trivia", "max_teams": 2})
	body := expectStatus(t, resp, http.StatusCreated)
	code, ok := body["code"].(string)
	if !ok || len(code) != 4 {
		t.Fatalf("expected 4 letter code, got %#v", body["code"])
	}
	return code
}

// startedGame creates a game owned by the first user, with one user on each
// of two teams, and begins it.
func startedGame(t *testing.T, ts *httptest.Server) (code, owner, rival string) {
	t.Helper()
	owner = createUser(t, ts, "Ada")
	rival = createUser(t, ts, "Bob")
	code = createGame(t, ts, owner)
	expectStatus(t, doRequest(t, ts, http.MethodPost, "/api/v1/games/"+code+"/open", owner, nil), http.StatusOK)
	expectStatus(t, doRequest(t, ts, http.MethodPost, "/api/v1/games/"+code+"/join", owner, map[string]string{"team": "Team 1"}), http.StatusOK)
	expectStatus(t, doRequest(t, ts, http.MethodPost, "/api/v1/games/"+code+"/join", rival, map[string]string{"team": "Team 2"}), http.StatusOK)
	expectStatus(t, doRequest(t, ts, http.MethodPost, "/api/v1/games/"+code+"/begin", owner, nil), http.StatusOK)
	return code, owner, rival
}

// plainTile returns a tile of the current round that is not a daily double,
// with its points.
func plainTile(t *testing.T, srv *Server, code string) (uint, int) {
	t.Helper()
	game, err := srv.store.Snapshot(t.Context(), code)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	round := game.Round(game.NextRoundID)
	for i := range round.Board.Categories {
		category := &round.Board.Categories[i]
		for j := range category.Tiles {
			tile := &category.Tiles[j]
			if tile.IsDailyDouble {
				continue
			}
			points, _ := engine.Points(round, category, tile)
			return tile.ID, points
		}
	}
	t.Fatalf("no plain tile in round %d", round.ID)
	return 0, 0
}

func action(messageID int64, actionType string, tileID uint, extra map[string]any) map[string]any {
	payload := map[string]any{"type": actionType, "tile_id": tileID}
	for key, value := range extra {
		payload[key] = value
	}
	return map[string]any{"message_id": messageID, "action": payload}
}
