// Package client talks to an agent server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"capture/game"
	"capture/metrics"
	"capture/server"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agent server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	serverURL  string
	httpClient *http.Client
}

// New returns a client for the server at serverURL. A nil httpClient
// uses http.DefaultClient.
func New(serverURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: httpClient,
	}
}

// Team is a handle on a team created on the server.
type Team struct {
	ID     string
	Agents []server.AgentInfo
	client *Client
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) CreateTeam(ctx context.Context, req server.CreateTeamRequest) (*Team, error) {
	var resp server.CreateTeamResponse
	if err := c.do(ctx, http.MethodPost, "/teams", req, &resp); err != nil {
		return nil, err
	}
	return &Team{ID: resp.ID, Agents: resp.Agents, client: c}, nil
}

// Register sends the initial state of the match.
func (t *Team) Register(ctx context.Context, state *game.Snapshot) error {
	return t.client.do(ctx, http.MethodPost, t.path("/register"), server.RegisterRequest{State: state}, nil)
}

// ChooseAction asks the agent playing index for its move.
func (t *Team) ChooseAction(ctx context.Context, index int, state *game.Snapshot) (game.Direction, error) {
	var resp server.ActionResponse
	err := t.client.do(ctx, http.MethodPost, t.path("/action"), server.ActionRequest{Index: index, State: state}, &resp)
	if err != nil {
		return "", err
	}
	return game.ParseDirection(string(resp.Action))
}

func (t *Team) Decisions(ctx context.Context) ([]metrics.Decision, error) {
	var decisions []metrics.Decision
	if err := t.client.do(ctx, http.MethodGet, t.path("/decisions"), nil, &decisions); err != nil {
		return nil, err
	}
	return decisions, nil
}

// Close ends the session on the server.
func (t *Team) Close(ctx context.Context) error {
	return t.client.do(ctx, http.MethodDelete, t.path(""), nil, nil)
}

func (t *Team) path(suffix string) string {
	return "/teams/" + t.ID + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e server.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
