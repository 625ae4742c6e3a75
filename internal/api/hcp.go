package api

import (
	"encoding/json"
	"net/http"

	"github.com/outfield-crm/outfield/internal/events"
	"github.com/outfield-crm/outfield/internal/record"
)

func (s *Server) listHCPs(w http.ResponseWriter, r *http.Request) {
	items, err := s.hcps.ListHCPs(r.Context())
	if err != nil {
		s.logger.Error("list hcps failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list hcps")
		return
	}
	if items == nil {
		items = []record.HCP{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"hcps": items})
}

func (s *Server) searchHCPs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results, err := s.hcps.SearchHCPs(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("search hcps failed", "query", req.Query, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to search hcps")
		return
	}
	if results == nil {
		results = []record.HCP{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) createHCP(w http.ResponseWriter, r *http.Request) {
	var in record.HCP
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := s.hcps.CreateHCP(r.Context(), in)
	if err != nil {
		s.logger.Error("create hcp failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create hcp")
		return
	}

	s.publish(events.SubjectHCPCreated, created)
	writeJSON(w, http.StatusCreated, map[string]any{"hcp": created})
}
