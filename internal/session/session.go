// Package session holds the client-side state containers: the chat
// transcript, the interaction list, the HCP directory and the live form.
// Every network mutation flows through the dispatch layer; collections are
// touched only inside settlement handlers, under the session lock.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/outfield-crm/outfield/internal/client"
	"github.com/outfield-crm/outfield/internal/collection"
	"github.com/outfield-crm/outfield/internal/dispatch"
	"github.com/outfield-crm/outfield/internal/extract"
	"github.com/outfield-crm/outfield/internal/form"
	"github.com/outfield-crm/outfield/internal/record"
)

type Session struct {
	api    *client.Client
	orch   *dispatch.Orchestrator
	rec    *form.Reconciler
	engine *extract.Engine
	logger *slog.Logger

	mu            sync.Mutex
	chat          *collection.Collection[record.ChatMessage]
	interactions  *collection.Collection[record.Interaction]
	hcps          *collection.Collection[record.HCP]
	searchResults []record.HCP
	form          form.State
}

func New(api *client.Client, logger *slog.Logger) *Session {
	return &Session{
		api:    api,
		orch:   dispatch.New(logger),
		rec:    form.NewReconciler(),
		engine: extract.NewEngine(),
		logger: logger,
		chat: collection.New(func(m record.ChatMessage) string {
			return m.Timestamp // transcript is append-only; the key is never used for removal
		}),
		interactions: collection.New(func(i record.Interaction) string { return i.ID }),
		hcps:         collection.New(func(h record.HCP) string { return h.ID }),
		form:         form.DefaultState(time.Now()),
	}
}

// SendChat appends the user's message to the transcript, extracts field
// candidates from it and stages them for overlay, then dispatches the chat
// request. The assistant reply lands in the transcript on settlement.
func (s *Session) SendChat(ctx context.Context, text string) extract.CandidateSet {
	s.mu.Lock()
	s.chat.Append(record.ChatMessage{
		Role:      "user",
		Content:   text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	s.mu.Unlock()

	candidates := s.engine.Extract(text)
	s.rec.Stage(candidates)

	dispatch.Run(ctx, s.orch, dispatch.FamilyChatSend,
		func(ctx context.Context) (client.ChatReply, error) {
			return s.api.SendChat(ctx, text)
		},
		func(reply client.ChatReply) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.chat.Append(record.ChatMessage{
				Role:      "assistant",
				Content:   reply.Response,
				Timestamp: reply.Timestamp,
			})
		},
	)
	return candidates
}

// ApplyPendingOverlay takes whatever the last extraction staged and overlays
// it onto the form. Candidates win over concurrent user edits; this is the
// accepted last-writer behavior of the overlay.
func (s *Session) ApplyPendingOverlay() {
	pending := s.rec.TakePending()
	if len(pending) == 0 {
		return
	}
	s.mu.Lock()
	s.form = form.Apply(pending, s.form)
	s.mu.Unlock()
}

// EditForm applies a direct user edit to the live form.
func (s *Session) EditForm(mutate func(*form.State)) {
	s.mu.Lock()
	mutate(&s.form)
	s.mu.Unlock()
}

// SubmitForm creates an interaction from the current form. On settlement the
// new record is appended and the form resets to its defaults.
func (s *Session) SubmitForm(ctx context.Context) {
	s.mu.Lock()
	payload := s.form.ToRecord()
	s.mu.Unlock()

	dispatch.Run(ctx, s.orch, dispatch.FamilyInteractionsCreate,
		func(ctx context.Context) (record.Interaction, error) {
			return s.api.CreateInteraction(ctx, payload)
		},
		func(created record.Interaction) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.interactions.Append(created)
			s.form = form.DefaultState(time.Now())
		},
	)
}

// FetchInteractions replaces the whole interaction list with the server's.
// A create settling after a later fetch can be overwritten until the next
// fetch; that race is preserved, not guarded.
func (s *Session) FetchInteractions(ctx context.Context) {
	dispatch.Run(ctx, s.orch, dispatch.FamilyInteractionsFetch,
		func(ctx context.Context) ([]record.Interaction, error) {
			return s.api.FetchInteractions(ctx)
		},
		func(items []record.Interaction) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.interactions.ReplaceAll(items)
		},
	)
}

// UpdateInteraction applies a partial update; the returned record replaces
// the matching list entry in place.
func (s *Session) UpdateInteraction(ctx context.Context, id string, upd record.InteractionUpdate) {
	dispatch.Run(ctx, s.orch, dispatch.FamilyInteractionsUpdate,
		func(ctx context.Context) (record.Interaction, error) {
			return s.api.UpdateInteraction(ctx, id, upd)
		},
		func(updated record.Interaction) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.interactions.ReplaceByKey(updated)
		},
	)
}

// DeleteInteraction removes the record server-side, then drops every list
// entry carrying the id.
func (s *Session) DeleteInteraction(ctx context.Context, id string) {
	dispatch.Run(ctx, s.orch, dispatch.FamilyInteractionsDelete,
		func(ctx context.Context) (string, error) {
			return s.api.DeleteInteraction(ctx, id)
		},
		func(deletedID string) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.interactions.RemoveByKey(deletedID)
		},
	)
}

// FetchHCPs replaces the HCP directory.
func (s *Session) FetchHCPs(ctx context.Context) {
	dispatch.Run(ctx, s.orch, dispatch.FamilyHCPFetch,
		func(ctx context.Context) ([]record.HCP, error) {
			return s.api.FetchHCPs(ctx)
		},
		func(items []record.HCP) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.hcps.ReplaceAll(items)
		},
	)
}

// SearchHCPs replaces the search results with the server's matches.
func (s *Session) SearchHCPs(ctx context.Context, query string) {
	dispatch.Run(ctx, s.orch, dispatch.FamilyHCPSearch,
		func(ctx context.Context) ([]record.HCP, error) {
			return s.api.SearchHCPs(ctx, query)
		},
		func(results []record.HCP) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.searchResults = results
		},
	)
}

// CreateHCP registers a new HCP and appends it to the directory.
func (s *Session) CreateHCP(ctx context.Context, h record.HCP) {
	dispatch.Run(ctx, s.orch, dispatch.FamilyHCPCreate,
		func(ctx context.Context) (record.HCP, error) {
			return s.api.CreateHCP(ctx, h)
		},
		func(created record.HCP) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.hcps.Append(created)
		},
	)
}

// Snapshot accessors. Each returns a copy safe to use off the session lock.

func (s *Session) ChatMessages() []record.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Items()
}

func (s *Session) Interactions() []record.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactions.Items()
}

func (s *Session) HCPs() []record.HCP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hcps.Items()
}

func (s *Session) SearchResults() []record.HCP {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.HCP, len(s.searchResults))
	copy(out, s.searchResults)
	return out
}

func (s *Session) Form() form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// OpState reports the lifecycle of one operation family.
func (s *Session) OpState(family dispatch.Family) dispatch.State {
	return s.orch.State(family)
}

// WaitIdle blocks until every in-flight operation has settled.
func (s *Session) WaitIdle() {
	s.orch.Wait()
}
