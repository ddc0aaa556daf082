package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"number-duel/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func createRoom(t *testing.T, ts *httptest.Server, player string, rounds int) map[string]any {
	t.Helper()
	resp := doRequestAs(t, ts, http.MethodPost, "/api/rooms", player, map[string]any{
		"room_name": "Duel",
		"rounds":    rounds,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func joinRoom(t *testing.T, ts *httptest.Server, player, code string) map[string]any {
	t.Helper()
	resp := doRequestAs(t, ts, http.MethodPost, "/api/join-by-code", player, map[string]any{
		"room_code": code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func submitValue(t *testing.T, ts *httptest.Server, player, roomID string, value int) *http.Response {
	t.Helper()
	return doRequestAs(t, ts, http.MethodPost, "/api/room/"+roomID+"/submit", player, map[string]any{
		"value": value,
	})
}

func mustSubmit(t *testing.T, ts *httptest.Server, player, roomID string, value int) map[string]any {
	t.Helper()
	resp := submitValue(t, ts, player, roomID, value)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func processRound(t *testing.T, ts *httptest.Server, roomID string) map[string]any {
	t.Helper()
	resp := doRequestAs(t, ts, http.MethodPost, "/api/room/"+roomID+"/process-round", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func fetchRoom(t *testing.T, ts *httptest.Server, roomID string) map[string]any {
	t.Helper()
	resp := doRequestAs(t, ts, http.MethodGet, "/api/room/"+roomID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func doRequestAs(t *testing.T, ts *httptest.Server, method, path, player string, payload any) *http.Response {
	t.Helper()
	headers := map[string]string{}
	if player != "" {
		headers["X-Player-Id"] = player
		headers["X-Player-Name"] = player
	}
	return doRequestHeaders(t, ts, method, path, headers, payload)
}

func doRequestHeaders(t *testing.T, ts *httptest.Server, method, path string, headers map[string]string, payload any) *http.Response {
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
	for key, value := range headers {
		req.Header.Set(key, value)
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

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var body []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode list body: %v", err)
	}
	return body
}

func assertInt(t *testing.T, body map[string]any, key string, want int) {
	t.Helper()
	value, ok := body[key].(float64)
	if !ok {
		t.Fatalf("expected numeric %q, got %#v", key, body[key])
	}
	if int(value) != want {
		t.Fatalf("expected %q = %d, got %d", key, want, int(value))
	}
}

func assertStringValue(t *testing.T, body map[string]any, key, want string) {
	t.Helper()
	value, ok := body[key].(string)
	if !ok {
		t.Fatalf("expected string %q, got %#v", key, body[key])
	}
	if value != want {
		t.Fatalf("expected %q = %q, got %q", key, want, value)
	}
}
