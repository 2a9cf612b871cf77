package gamely

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthToken(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/token" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if creds.Username != "alice" || creds.Password != "secret" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-123"}`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	token, err := client.AuthToken(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("expected tok-123, got %q", token)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		if r.URL.Path != "/users/alice" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"user":{"username":"alice","is_admin":true,"likes":[7]}}`))
	}))
	defer backend.Close()

	client := New(backend.URL).WithToken("tok-123")
	user, err := client.GetCurrentUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" || !user.IsAdmin || len(user.Likes) != 1 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestWithTokenDoesNotMutateBase(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("base client sent Authorization header: %q", got)
		}
		_, _ = w.Write([]byte(`{"games":[]}`))
	}))
	defer backend.Close()

	base := New(backend.URL)
	_ = base.WithToken("tok-123")

	if _, err := base.Games(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGamesQueryParameter(t *testing.T) {
	var gotQueries []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"games":[{"id":1,"title":"Zelda"}]}`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	if _, err := client.Games(context.Background(), ""); err != nil {
		t.Fatalf("list all: %v", err)
	}
	games, err := client.Games(context.Background(), "zelda")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(games) != 1 || games[0].Title != "Zelda" {
		t.Fatalf("unexpected games: %+v", games)
	}

	if gotQueries[0] != "" {
		t.Fatalf("list all should send no query, got %q", gotQueries[0])
	}
	if gotQueries[1] != "title=zelda" {
		t.Fatalf("search should send title param, got %q", gotQueries[1])
	}
}

func TestLikeGamePath(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/alice/games/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"liked":42}`))
	}))
	defer backend.Close()

	client := New(backend.URL).WithToken("tok")
	liked, err := client.LikeGame(context.Background(), "alice", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked != 42 {
		t.Fatalf("expected 42, got %d", liked)
	}
}

func TestRequestErrorSingleMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid credentials"}}`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	_, err := client.AuthToken(context.Background(), Credentials{})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", reqErr.StatusCode)
	}
	if len(reqErr.Messages) != 1 || reqErr.Messages[0] != "invalid credentials" {
		t.Fatalf("unexpected messages: %v", reqErr.Messages)
	}
}

func TestRequestErrorMessageList(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":["username required","password too short"]}}`))
	}))
	defer backend.Close()

	client := New(backend.URL)
	_, err := client.Register(context.Background(), Registration{})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if len(reqErr.Messages) != 2 {
		t.Fatalf("unexpected messages: %v", reqErr.Messages)
	}
}

func TestRequestErrorMalformedBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer backend.Close()

	client := New(backend.URL)
	err := client.DeleteUser(context.Background(), "alice")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if len(reqErr.Messages) != 1 || reqErr.Messages[0] != "request failed with status 500" {
		t.Fatalf("unexpected fallback messages: %v", reqErr.Messages)
	}
}

func TestTransportError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // connection refused from here on

	client := New(backend.URL)
	_, err := client.Genres(context.Background(), "")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestMessages(t *testing.T) {
	reqErr := &RequestError{StatusCode: 400, Messages: []string{"a", "b"}}
	if got := Messages(reqErr); len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected messages: %v", got)
	}
	if got := Messages(errors.New("plain")); len(got) != 1 || got[0] != "plain" {
		t.Fatalf("unexpected messages: %v", got)
	}
	if got := Messages(nil); got != nil {
		t.Fatalf("nil error should yield nil, got %v", got)
	}
}
