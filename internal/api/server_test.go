package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/outfield-crm/outfield/internal/record"
	"github.com/outfield-crm/outfield/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory InteractionStore and HCPStore.
type fakeStore struct {
	interactions []record.Interaction
	hcps         []record.HCP
	nextID       int
}

func (f *fakeStore) assignID() string {
	f.nextID++
	return "id-" + strconv.Itoa(f.nextID)
}

func (f *fakeStore) CreateInteraction(_ context.Context, in record.Interaction) (record.Interaction, error) {
	in.ID = f.assignID()
	f.interactions = append(f.interactions, in)
	return in, nil
}

func (f *fakeStore) ListInteractions(_ context.Context) ([]record.Interaction, error) {
	return f.interactions, nil
}

func (f *fakeStore) GetInteraction(_ context.Context, id string) (record.Interaction, error) {
	for _, it := range f.interactions {
		if it.ID == id {
			return it, nil
		}
	}
	return record.Interaction{}, store.ErrNotFound
}

func (f *fakeStore) UpdateInteraction(_ context.Context, id string, upd record.InteractionUpdate) (record.Interaction, error) {
	for i, it := range f.interactions {
		if it.ID == id {
			if upd.HCPName != nil {
				it.HCPName = *upd.HCPName
			}
			if upd.Location != nil {
				it.Location = *upd.Location
			}
			f.interactions[i] = it
			return it, nil
		}
	}
	return record.Interaction{}, store.ErrNotFound
}

func (f *fakeStore) DeleteInteraction(_ context.Context, id string) error {
	for i, it := range f.interactions {
		if it.ID == id {
			f.interactions = append(f.interactions[:i], f.interactions[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListHCPs(_ context.Context) ([]record.HCP, error) {
	return f.hcps, nil
}

func (f *fakeStore) SearchHCPs(_ context.Context, query string) ([]record.HCP, error) {
	var out []record.HCP
	for _, h := range f.hcps {
		if h.Name == query || h.Specialty == query {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateHCP(_ context.Context, in record.HCP) (record.HCP, error) {
	in.ID = f.assignID()
	f.hcps = append(f.hcps, in)
	return in, nil
}

type fakeResponder struct {
	logged []record.Interaction
}

func (f *fakeResponder) Respond(message string) string {
	return "echo: " + message
}

func (f *fakeResponder) Logged() []record.Interaction {
	return f.logged
}

func newTestServer(fs *fakeStore) *Server {
	return NewServer(0, fs, fs, &fakeResponder{}, nil, discardLogger())
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	w := doJSON(t, srv, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Message   string            `json:"message"`
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "running" {
		t.Errorf("status = %q", body.Status)
	}
	if body.Endpoints["interactions"] != "/interactions" {
		t.Errorf("endpoints = %v", body.Endpoints)
	}
}

func TestMemoryInteractionsEndpoint(t *testing.T) {
	srv := newTestServer(&fakeStore{})
	responder := srv.assistant.(*fakeResponder)

	// Empty memory still returns a JSON array, not null.
	w := doJSON(t, srv, http.MethodGet, "/interactions-memory/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Count        int                  `json:"count"`
		Interactions []record.Interaction `json:"interactions"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 0 || body.Interactions == nil {
		t.Errorf("empty memory = %+v, want count 0 and [] interactions", body)
	}

	responder.logged = []record.Interaction{
		{ID: "1", HCPName: "Dr. Smith"},
		{ID: "2", HCPName: "Dr. Chen"},
	}
	w = doJSON(t, srv, http.MethodGet, "/interactions-memory/", nil)
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 2 || len(body.Interactions) != 2 {
		t.Fatalf("memory = %+v", body)
	}
	if body.Interactions[1].HCPName != "Dr. Chen" {
		t.Errorf("interactions = %v", body.Interactions)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestInteractionCRUD(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	// Create.
	w := doJSON(t, srv, http.MethodPost, "/interactions/", record.Interaction{HCPName: "Dr. Smith"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created record.Interaction
	json.NewDecoder(w.Body).Decode(&created)
	if created.ID == "" || created.HCPName != "Dr. Smith" {
		t.Fatalf("created = %+v", created)
	}

	// List.
	w = doJSON(t, srv, http.MethodGet, "/interactions/", nil)
	var list []record.Interaction
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 1 {
		t.Fatalf("list = %v", list)
	}

	// Get.
	w = doJSON(t, srv, http.MethodGet, "/interactions/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", w.Code)
	}

	// Update.
	name := "Dr. Renamed"
	w = doJSON(t, srv, http.MethodPut, "/interactions/"+created.ID, record.InteractionUpdate{HCPName: &name})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	var updated record.Interaction
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.HCPName != "Dr. Renamed" {
		t.Errorf("updated = %+v", updated)
	}

	// Delete.
	w = doJSON(t, srv, http.MethodDelete, "/interactions/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doJSON(t, srv, http.MethodGet, "/interactions/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestListInteractions_EmptyIsArray(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	w := doJSON(t, srv, http.MethodGet, "/interactions/", nil)
	if got := bytes.TrimSpace(w.Body.Bytes()); string(got) != "[]" {
		t.Errorf("empty list body = %s, want []", got)
	}
}

func TestUpdateMissingInteraction(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	name := "Dr. Ghost"
	w := doJSON(t, srv, http.MethodPut, "/interactions/nope", record.InteractionUpdate{HCPName: &name})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	w := doJSON(t, srv, http.MethodPost, "/chat/", map[string]string{"message": "Met Dr. Smith"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["response"] != "echo: Met Dr. Smith" {
		t.Errorf("response = %q", body["response"])
	}
	if body["timestamp"] == "" {
		t.Error("timestamp missing")
	}
}

func TestChatEndpoint_BadBody(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/chat/", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHCPEndpoints(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	// Create.
	w := doJSON(t, srv, http.MethodPost, "/api/hcp", record.HCP{Name: "Dr. Chen", Specialty: "cardiology"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create hcp: expected 201, got %d", w.Code)
	}
	var createResp struct {
		HCP record.HCP `json:"hcp"`
	}
	json.NewDecoder(w.Body).Decode(&createResp)
	if createResp.HCP.ID == "" {
		t.Fatalf("create response = %+v", createResp)
	}

	// List envelope.
	w = doJSON(t, srv, http.MethodGet, "/api/hcp", nil)
	var listResp struct {
		HCPs []record.HCP `json:"hcps"`
	}
	json.NewDecoder(w.Body).Decode(&listResp)
	if len(listResp.HCPs) != 1 {
		t.Errorf("hcps = %v", listResp.HCPs)
	}

	// Search envelope.
	w = doJSON(t, srv, http.MethodPost, "/api/tools/search-hcp", map[string]string{"query": "cardiology"})
	var searchResp struct {
		Results []record.HCP `json:"results"`
	}
	json.NewDecoder(w.Body).Decode(&searchResp)
	if len(searchResp.Results) != 1 || searchResp.Results[0].Name != "Dr. Chen" {
		t.Errorf("results = %v", searchResp.Results)
	}
}

func TestCreateHCP_RequiresName(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	w := doJSON(t, srv, http.MethodPost, "/api/hcp", record.HCP{Specialty: "oncology"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestToolsEndpoint(t *testing.T) {
	srv := newTestServer(&fakeStore{})

	w := doJSON(t, srv, http.MethodGet, "/tools/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Features []map[string]string `json:"features"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if len(body.Features) != 3 {
		t.Errorf("features = %v", body.Features)
	}
}
