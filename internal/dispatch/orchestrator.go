// Package dispatch drives network-bound operations through a
// pending/fulfilled/rejected lifecycle, one state per operation family.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
)

// Family names a class of asynchronous operation sharing one lifecycle.
type Family string

const (
	FamilyChatSend           Family = "chat-send"
	FamilyInteractionsFetch  Family = "interactions-fetch"
	FamilyInteractionsCreate Family = "interactions-create"
	FamilyInteractionsUpdate Family = "interactions-update"
	FamilyInteractionsDelete Family = "interactions-delete"
	FamilyHCPFetch           Family = "hcp-fetch"
	FamilyHCPSearch          Family = "hcp-search"
	FamilyHCPCreate          Family = "hcp-create"
)

// State is the externally visible lifecycle of one family. Err is empty
// while loading and after a fulfilled settlement; it carries the message of
// the most recent rejection otherwise.
type State struct {
	Loading bool
	Err     string
}

// Orchestrator runs dispatched calls in their own goroutines and serializes
// every settlement (state transition plus success handler) under one lock,
// so no two settlements interleave their effects. There is no dedup, no
// cancellation and no timeout: a second dispatch of a busy family is
// permitted and completions land in network-arrival order.
type Orchestrator struct {
	mu     sync.Mutex
	states map[Family]*State
	wg     sync.WaitGroup
	logger *slog.Logger
}

func New(logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		states: make(map[Family]*State),
		logger: logger,
	}
}

// State returns a snapshot of the family's lifecycle.
func (o *Orchestrator) State(family Family) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return *o.stateLocked(family)
}

func (o *Orchestrator) stateLocked(family Family) *State {
	st, ok := o.states[family]
	if !ok {
		st = &State{}
		o.states[family] = st
	}
	return st
}

// Wait blocks until every in-flight dispatch has settled.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Run dispatches call for the family: loading goes true and the previous
// error is cleared immediately, the call runs in its own goroutine, and on
// settlement the state flips back with either the error message or a run of
// onSuccess. onSuccess executes under the settlement lock and must not
// dispatch further work inline.
func Run[R any](ctx context.Context, o *Orchestrator, family Family, call func(context.Context) (R, error), onSuccess func(R)) {
	o.mu.Lock()
	st := o.stateLocked(family)
	st.Loading = true
	st.Err = ""
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		res, err := call(ctx)

		o.mu.Lock()
		defer o.mu.Unlock()
		st := o.stateLocked(family)
		st.Loading = false
		if err != nil {
			st.Err = err.Error()
			o.logger.Error("operation rejected", "family", family, "error", err)
			return
		}
		if onSuccess != nil {
			onSuccess(res)
		}
	}()
}
