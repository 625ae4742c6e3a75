package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/outfield-crm/outfield/internal/record"
)

// chat answers one assistant message. The responder never fails; the only
// error path here is a bad request body.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	response := s.assistant.Respond(req.Message)
	writeJSON(w, http.StatusOK, map[string]string{
		"response":  response,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// memoryInteractions reports the interactions the assistant has logged from
// chat, which live in its memory rather than the database.
func (s *Server) memoryInteractions(w http.ResponseWriter, r *http.Request) {
	logged := s.assistant.Logged()
	if logged == nil {
		logged = []record.Interaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":        len(logged),
		"interactions": logged,
	})
}
