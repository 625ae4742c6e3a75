package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfield-crm/outfield/internal/events"
	"github.com/outfield-crm/outfield/internal/record"
	"github.com/outfield-crm/outfield/internal/store"
)

func (s *Server) listInteractions(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListInteractions(r.Context())
	if err != nil {
		s.logger.Error("list interactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list interactions")
		return
	}
	if items == nil {
		items = []record.Interaction{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) createInteraction(w http.ResponseWriter, r *http.Request) {
	var in record.Interaction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.store.CreateInteraction(r.Context(), in)
	if err != nil {
		s.logger.Error("create interaction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create interaction")
		return
	}

	s.publish(events.SubjectInteractionCreated, created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getInteraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	it, err := s.store.GetInteraction(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "interaction not found")
		return
	}
	if err != nil {
		s.logger.Error("get interaction failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get interaction")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) updateInteraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd record.InteractionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.store.UpdateInteraction(r.Context(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "interaction not found")
		return
	}
	if err != nil {
		s.logger.Error("update interaction failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update interaction")
		return
	}

	s.publish(events.SubjectInteractionUpdated, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteInteraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.DeleteInteraction(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "interaction not found")
		return
	}
	if err != nil {
		s.logger.Error("delete interaction failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete interaction")
		return
	}

	s.publish(events.SubjectInteractionDeleted, map[string]string{"id": id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Interaction deleted successfully"})
}
