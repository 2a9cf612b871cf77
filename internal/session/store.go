// Package session tracks the authenticated session: the persisted token,
// the current user derived from it, and the operations that mutate both.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/gamely-app/webclient/internal/gamely"
	"github.com/gamely-app/webclient/types"
)

// Result is the outcome of a session mutation. Success is false when the
// operation was rejected; Errors then carries the messages to display.
type Result struct {
	Success bool
	Errors  []string
}

func failure(err error) Result {
	return Result{Errors: gamely.Messages(err)}
}

// Store is the session state machine. It starts bootstrapping, and after
// Bootstrap completes it is either unauthenticated (no token) or
// authenticated (token set, user resolved). Safe for concurrent use: the
// web frontend shares one store per browser session across request
// goroutines.
type Store struct {
	api     *gamely.Client
	storage TokenStorage
	logger  *log.Logger

	mu         sync.Mutex
	token      string
	user       *types.User
	infoLoaded bool
}

// NewStore builds a store over the given base client and token storage.
func NewStore(api *gamely.Client, storage TokenStorage) *Store {
	return &Store{
		api:     api,
		storage: storage,
		logger:  log.Default(),
	}
}

// Bootstrap loads the persisted token and resolves the current user. A
// token that fails to decode or resolve leaves the session unauthenticated
// (logged, not surfaced) so callers never hang on a bad token; InfoLoaded
// reports true afterwards regardless of outcome.
func (s *Store) Bootstrap(ctx context.Context) {
	token, err := s.storage.Load()
	if err != nil {
		s.logger.Printf("session: load token: %v", err)
		token = ""
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.resolveUser(ctx)

	s.mu.Lock()
	s.infoLoaded = true
	s.mu.Unlock()
}

// Login exchanges credentials for a token. On success the token is
// persisted and the user record re-resolved; on failure the session is
// left untouched and the backend's messages are returned.
func (s *Store) Login(ctx context.Context, creds gamely.Credentials) Result {
	token, err := s.api.AuthToken(ctx, creds)
	if err != nil {
		return failure(err)
	}
	s.setToken(ctx, token)
	return Result{Success: true}
}

// Signup registers an account; otherwise identical to Login.
func (s *Store) Signup(ctx context.Context, reg gamely.Registration) Result {
	token, err := s.api.Register(ctx, reg)
	if err != nil {
		return failure(err)
	}
	s.setToken(ctx, token)
	return Result{Success: true}
}

// UpdateUser patches the profile and merges the returned name and email
// fields into the in-memory user.
func (s *Store) UpdateUser(ctx context.Context, username string, patch gamely.ProfilePatch) Result {
	updated, err := s.Client().UpdateUser(ctx, username, patch)
	if err != nil {
		return failure(err)
	}

	s.mu.Lock()
	if s.user != nil {
		s.user.FirstName = updated.FirstName
		s.user.LastName = updated.LastName
		s.user.Email = updated.Email
	}
	s.mu.Unlock()
	return Result{Success: true}
}

// LikeGame records a like and appends the returned id to the in-memory
// user's likes. The backend decides whether repeated likes deduplicate;
// the client appends exactly what it is told.
func (s *Store) LikeGame(ctx context.Context, username string, gameID int) Result {
	liked, err := s.Client().LikeGame(ctx, username, gameID)
	if err != nil {
		return failure(err)
	}

	s.mu.Lock()
	if s.user != nil {
		s.user.Likes = append(s.user.Likes, liked)
	}
	s.mu.Unlock()
	return Result{Success: true}
}

// Logout clears the user and token synchronously. Idempotent: logging out
// of an unauthenticated session is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.logger.Printf("session: clear token: %v", err)
	}
}

// CurrentUser returns a copy of the resolved user, or nil when
// unauthenticated.
func (s *Store) CurrentUser() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	user.Likes = append([]int(nil), s.user.Likes...)
	return &user
}

// Token returns the current session token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// InfoLoaded reports whether the initial user resolution has finished.
func (s *Store) InfoLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infoLoaded
}

// Client returns an API client authenticated with the current token. The
// store owns the token; clients never carry shared mutable auth state.
func (s *Store) Client() *gamely.Client {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	return s.api.WithToken(token)
}

// setToken persists the new token and re-resolves the user from it. A
// persistence failure is logged; the in-memory session still advances so
// the login that produced the token is not thrown away. The token change
// completes a resolution pass, so InfoLoaded reports true afterwards even
// on a store that never bootstrapped.
func (s *Store) setToken(ctx context.Context, token string) {
	if err := s.storage.Save(token); err != nil {
		s.logger.Printf("session: save token: %v", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.resolveUser(ctx)

	s.mu.Lock()
	s.infoLoaded = true
	s.mu.Unlock()
}

// resolveUser derives the current user from the token: decode the username
// claim, then fetch the authoritative record. Any failure leaves the user
// nil.
func (s *Store) resolveUser(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		s.setUser(nil)
		return
	}

	username, err := UsernameFromToken(token)
	if err != nil {
		s.logger.Printf("session: %v", err)
		s.setUser(nil)
		return
	}

	user, err := s.api.WithToken(token).GetCurrentUser(ctx, username)
	if err != nil {
		s.logger.Printf("session: resolve user %q: %v", username, err)
		s.setUser(nil)
		return
	}
	s.setUser(&user)
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
