// Package api exposes the CRM over HTTP: interaction CRUD, the HCP
// directory and search, and the assistant chat endpoint.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/outfield-crm/outfield/internal/events"
	"github.com/outfield-crm/outfield/internal/record"
)

// InteractionStore is the persistence surface the interaction handlers need.
type InteractionStore interface {
	CreateInteraction(ctx context.Context, in record.Interaction) (record.Interaction, error)
	ListInteractions(ctx context.Context) ([]record.Interaction, error)
	GetInteraction(ctx context.Context, id string) (record.Interaction, error)
	UpdateInteraction(ctx context.Context, id string, upd record.InteractionUpdate) (record.Interaction, error)
	DeleteInteraction(ctx context.Context, id string) error
}

// HCPStore is the persistence surface the HCP handlers need.
type HCPStore interface {
	ListHCPs(ctx context.Context) ([]record.HCP, error)
	SearchHCPs(ctx context.Context, query string) ([]record.HCP, error)
	CreateHCP(ctx context.Context, in record.HCP) (record.HCP, error)
}

// Responder answers chat messages and exposes the interactions it has
// logged from them.
type Responder interface {
	Respond(message string) string
	Logged() []record.Interaction
}

type Server struct {
	router    *chi.Mux
	port      int
	store     InteractionStore
	hcps      HCPStore
	assistant Responder
	events    *events.Publisher // optional
	logger    *slog.Logger
}

func NewServer(port int, store InteractionStore, hcps HCPStore, assistant Responder, pub *events.Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		store:     store,
		hcps:      hcps,
		assistant: assistant,
		events:    pub,
		logger:    logger,
	}

	router.Get("/", s.root)
	router.Get("/health", s.health)
	router.Get("/tools/", s.tools)
	router.Post("/chat/", s.chat)
	router.Get("/interactions-memory/", s.memoryInteractions)

	router.Route("/interactions", func(r chi.Router) {
		r.Get("/", s.listInteractions)
		r.Post("/", s.createInteraction)
		r.Get("/{id}", s.getInteraction)
		r.Put("/{id}", s.updateInteraction)
		r.Delete("/{id}", s.deleteInteraction)
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/hcp", s.listHCPs)
		r.Post("/hcp", s.createHCP)
		r.Post("/tools/search-hcp", s.searchHCPs)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Outfield HCP CRM API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": map[string]string{
			"interactions": "/interactions",
			"chat":         "/chat",
			"tools":        "/tools",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) tools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"features": []map[string]string{
			{
				"name":        "Log Interaction",
				"description": "Log HCP interactions using natural language",
				"example":     "Met Dr. Smith, discussed Product X, positive sentiment",
			},
			{
				"name":        "Search Interactions",
				"description": "Search through logged interactions",
				"example":     "Search for cardiologists",
			},
			{
				"name":        "List All",
				"description": "View all logged interactions",
				"example":     "Show all interactions",
			},
		},
	})
}

// publish sends an event when a broker is configured; failures are logged,
// never surfaced to the API caller.
func (s *Server) publish(subject string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, data); err != nil {
		s.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
