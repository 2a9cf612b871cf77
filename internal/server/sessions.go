package server

import (
	"context"
	"sync"

	"github.com/gamely-app/webclient/internal/fetch"
	"github.com/gamely-app/webclient/internal/gamely"
	"github.com/gamely-app/webclient/internal/session"
	"github.com/gamely-app/webclient/types"
)

// tokenCookie is the one durable piece of client state: the raw session
// token, stored in the browser under this fixed name. Absence means
// unauthenticated.
const tokenCookie = "gamely_token"

// webSession bundles the per-browser state: the session store plus one
// fetcher per catalog resource kind.
type webSession struct {
	store  *session.Store
	games  *fetch.Fetcher[types.Game]
	genres *fetch.Fetcher[types.Genre]
	users  *fetch.Fetcher[types.User]
}

func newWebSession(api *gamely.Client, token string) *webSession {
	store := session.NewStore(api, session.NewMemoryStorage(token))
	return &webSession{
		store: store,
		games: fetch.New(func(ctx context.Context, query string) ([]types.Game, error) {
			return store.Client().Games(ctx, query)
		}),
		genres: fetch.New(func(ctx context.Context, query string) ([]types.Genre, error) {
			return store.Client().Genres(ctx, query)
		}),
		users: fetch.New(func(ctx context.Context, query string) ([]types.User, error) {
			return store.Client().ListUsers(ctx)
		}),
	}
}

// registry maps session tokens to live sessions. Sessions are rebuilt on
// demand from the cookie, so they survive server restarts as long as the
// browser holds the token.
type registry struct {
	api *gamely.Client

	mu       sync.Mutex
	sessions map[string]*webSession
}

func newRegistry(api *gamely.Client) *registry {
	return &registry{
		api:      api,
		sessions: make(map[string]*webSession),
	}
}

// session returns the live session for token, bootstrapping a new one when
// the browser presents a token the server has not seen.
func (r *registry) session(ctx context.Context, token string) *webSession {
	r.mu.Lock()
	if sess, ok := r.sessions[token]; ok {
		r.mu.Unlock()
		return sess
	}
	r.mu.Unlock()

	// Bootstrap outside the lock; it calls the backend.
	sess := newWebSession(r.api, token)
	sess.store.Bootstrap(ctx)

	// A bootstrap that resolved no user is not cached: the next request
	// retries from the cookie, so a backend blip cannot lock a valid
	// token out, and garbage cookie values never grow the registry.
	if sess.store.CurrentUser() == nil {
		return sess
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[token]; ok {
		return existing
	}
	r.sessions[token] = sess
	return sess
}

// add registers a session under the token it just acquired.
func (r *registry) add(token string, sess *webSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = sess
}

// drop forgets the session for token.
func (r *registry) drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
