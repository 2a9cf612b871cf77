// Package gamely is the HTTP client for the Gamely backend REST API.
package gamely

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gamely-app/webclient/types"
)

// maxErrorBody caps how much of an error response is read when decoding
// the error envelope.
const maxErrorBody = 64 << 10

// Client handles all communication with the Gamely backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a client for the backend at baseURL. The returned client is
// unauthenticated; derive per-session clients with WithToken.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// WithToken returns a copy of the client that sends the given bearer token.
// The receiver is never mutated, so one base client can serve any number of
// sessions.
func (c *Client) WithToken(token string) *Client {
	derived := *c
	derived.token = token
	return &derived
}

// Credentials is the auth/token request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the auth/register request payload.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ProfilePatch carries the updatable profile fields. Empty fields are
// omitted from the PATCH body.
type ProfilePatch struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// AuthToken exchanges credentials for a session token.
func (c *Client) AuthToken(ctx context.Context, creds Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "auth/token", nil, creds, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account and returns a session token.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "auth/register", nil, reg, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// RequestPasswordReset asks the backend to mail a reset token.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, "auth/request-reset", nil, body, nil)
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{Token: token, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "auth/reset-password", nil, body, nil)
}

// GetCurrentUser fetches the full record for username.
func (c *Client) GetCurrentUser(ctx context.Context, username string) (types.User, error) {
	var out struct {
		User types.User `json:"user"`
	}
	path := "users/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return types.User{}, err
	}
	return out.User, nil
}

// UpdateUser patches a profile and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, username string, patch ProfilePatch) (types.User, error) {
	var out struct {
		User types.User `json:"user"`
	}
	path := "users/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodPatch, path, nil, patch, &out); err != nil {
		return types.User{}, err
	}
	return out.User, nil
}

// DeleteUser removes an account. Admin-only on the backend.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	path := "users/" + url.PathEscape(username)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// LikeGame records a like and returns the liked game id.
func (c *Client) LikeGame(ctx context.Context, username string, gameID int) (int, error) {
	var out struct {
		Liked int `json:"liked"`
	}
	path := fmt.Sprintf("users/%s/games/%d", url.PathEscape(username), gameID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Liked, nil
}

// ListUsers returns every account. Admin-only on the backend.
func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	var out struct {
		Users []types.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetGenre fetches one genre with its nested games.
func (c *Client) GetGenre(ctx context.Context, handle string) (types.Genre, error) {
	var out struct {
		Genre types.Genre `json:"genre"`
	}
	path := "genres/" + url.PathEscape(handle)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return types.Genre{}, err
	}
	return out.Genre, nil
}

// Genres lists all genres, or searches by name when name is non-empty.
func (c *Client) Genres(ctx context.Context, name string) ([]types.Genre, error) {
	var query url.Values
	if name != "" {
		query = url.Values{"name": {name}}
	}
	var out struct {
		Genres []types.Genre `json:"genres"`
	}
	if err := c.do(ctx, http.MethodGet, "genres", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// Games lists all games, or searches by title when title is non-empty.
func (c *Client) Games(ctx context.Context, title string) ([]types.Game, error) {
	var query url.Values
	if title != "" {
		query = url.Values{"title": {title}}
	}
	var out struct {
		Games []types.Game `json:"games"`
	}
	if err := c.do(ctx, http.MethodGet, "games", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// do is the single helper behind every endpoint method. Mutating requests
// serialize body as JSON; reads pass query parameters. A non-2xx response
// becomes a *RequestError, a network failure a *TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return requestError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// requestError extracts the server-provided message list from an error
// response. A body that does not match the envelope falls back to a
// status-derived message.
func requestError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope errorEnvelope
	messages := []string(nil)
	if err := json.Unmarshal(data, &envelope); err == nil {
		messages = envelope.Error.Message
	}
	if len(messages) == 0 {
		messages = []string{fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}
	return &RequestError{StatusCode: resp.StatusCode, Messages: messages}
}
