package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client is a minimal API client for the duel server. Token is sent as a
// bearer credential when set; PlayerID/PlayerName cover servers running
// without an auth secret.
type Client struct {
	BaseURL    string
	Token      string
	PlayerID   string
	PlayerName string
	HTTPClient *http.Client
}

func (c *Client) Create(ctx context.Context, roomName string, rounds int) (RoomView, error) {
	return c.do(ctx, http.MethodPost, "/api/rooms", map[string]any{"room_name": roomName, "rounds": rounds})
}

func (c *Client) Room(ctx context.Context, roomID string) (RoomView, error) {
	return c.do(ctx, http.MethodGet, "/api/room/"+roomID, nil)
}

func (c *Client) JoinByCode(ctx context.Context, code string) (RoomView, error) {
	return c.do(ctx, http.MethodPost, "/api/join-by-code", map[string]any{"room_code": code})
}

func (c *Client) Submit(ctx context.Context, roomID string, value int) (RoomView, error) {
	return c.do(ctx, http.MethodPost, "/api/room/"+roomID+"/submit", map[string]any{"value": value})
}

func (c *Client) Resolve(ctx context.Context, roomID string) (RoomView, error) {
	return c.do(ctx, http.MethodPost, "/api/room/"+roomID+"/process-round", nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (RoomView, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return RoomView{}, err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return RoomView{}, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.PlayerID != "" {
		req.Header.Set("X-Player-Id", c.PlayerID)
		req.Header.Set("X-Player-Name", c.PlayerName)
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return RoomView{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error     string `json:"error"`
			Remaining *int   `json:"remaining"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return RoomView{}, fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return RoomView{}, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	var view RoomView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return RoomView{}, err
	}
	return view, nil
}
