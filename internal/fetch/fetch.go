// Package fetch provides the query-driven list loader shared by the
// catalog views.
package fetch

import (
	"context"
	"sync"
)

// ListFunc loads the list for a query. An empty query means "list all";
// implementations decide how to search otherwise.
type ListFunc[T any] func(ctx context.Context, query string) ([]T, error)

// State is a snapshot of a fetcher: the last committed data, the error
// from the last completed fetch, and whether a fetch is in flight.
type State[T any] struct {
	Data    []T
	Err     error
	Loading bool
}

// Fetcher tracks load/error/data state for one resource kind. A generation
// counter makes commits last-initiated-wins: when queries change faster
// than responses arrive, a superseded response cannot overwrite a newer
// result.
type Fetcher[T any] struct {
	list ListFunc[T]

	mu    sync.Mutex
	gen   uint64
	state State[T]
}

// New builds a fetcher around the given list function.
func New[T any](list ListFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{list: list}
}

// Fetch runs the list function for query and commits the outcome, unless a
// newer fetch started in the meantime. On failure the error is stored and
// the previous data retained; on success the data is replaced and the
// error cleared. The returned state is this fetch's own outcome either way.
func (f *Fetcher[T]) Fetch(ctx context.Context, query string) State[T] {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.state.Loading = true
	f.mu.Unlock()

	data, err := f.list(ctx, query)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// Superseded while in flight; the newer fetch owns the state.
		return State[T]{Data: data, Err: err}
	}

	f.state.Loading = false
	if err != nil {
		f.state.Err = err
	} else {
		f.state.Data = data
		f.state.Err = nil
	}
	return f.state
}

// State returns a snapshot of the committed state.
func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
