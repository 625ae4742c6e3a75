package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/outfield-crm/outfield/internal/record"
)

func TestSendChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["message"] != "Met Dr. Smith" {
			t.Errorf("message = %q", req["message"])
		}
		json.NewEncoder(w).Encode(map[string]string{
			"response":  "Interaction logged",
			"timestamp": "2025-03-14T09:00:00Z",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	reply, err := c.SendChat(context.Background(), "Met Dr. Smith")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response != "Interaction logged" {
		t.Errorf("response = %q", reply.Response)
	}
	if reply.Timestamp != "2025-03-14T09:00:00Z" {
		t.Errorf("timestamp = %q", reply.Timestamp)
	}
}

func TestFetchInteractions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/interactions/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]record.Interaction{
			{ID: "i1", HCPName: "Dr. Smith"},
			{ID: "i2", HCPName: "Dr. Jones"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	items, err := c.FetchInteractions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "i1" {
		t.Errorf("items = %v", items)
	}
}

func TestCreateInteraction_ReturnsAssignedID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in record.Interaction
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		in.ID = "assigned-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	c := New(server.URL)
	out, err := c.CreateInteraction(context.Background(), record.Interaction{HCPName: "Dr. Smith"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "assigned-1" {
		t.Errorf("id = %q", out.ID)
	}
	if out.HCPName != "Dr. Smith" {
		t.Errorf("hcp_name = %q", out.HCPName)
	}
}

func TestUpdateInteraction_PutsToIDPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/interactions/i7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(record.Interaction{ID: "i7", HCPName: "Dr. Updated"})
	}))
	defer server.Close()

	name := "Dr. Updated"
	c := New(server.URL)
	out, err := c.UpdateInteraction(context.Background(), "i7", record.InteractionUpdate{HCPName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.HCPName != "Dr. Updated" {
		t.Errorf("hcp_name = %q", out.HCPName)
	}
}

func TestDeleteInteraction_SynthesizesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Interaction deleted successfully"})
	}))
	defer server.Close()

	c := New(server.URL)
	id, err := c.DeleteInteraction(context.Background(), "i3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "i3" {
		t.Errorf("id = %q, want the client-synthesized id", id)
	}
}

func TestHCPEnvelopes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/hcp":
			if r.Method == http.MethodPost {
				json.NewEncoder(w).Encode(map[string]record.HCP{"hcp": {ID: "h9", Name: "Dr. New"}})
				return
			}
			json.NewEncoder(w).Encode(map[string][]record.HCP{"hcps": {{ID: "h1", Name: "Dr. Smith"}}})
		case "/api/tools/search-hcp":
			json.NewEncoder(w).Encode(map[string][]record.HCP{"results": {{ID: "h2", Name: "Dr. Jones"}}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL)

	hcps, err := c.FetchHCPs(context.Background())
	if err != nil || len(hcps) != 1 || hcps[0].ID != "h1" {
		t.Errorf("FetchHCPs = %v, %v", hcps, err)
	}

	results, err := c.SearchHCPs(context.Background(), "cardio")
	if err != nil || len(results) != 1 || results[0].ID != "h2" {
		t.Errorf("SearchHCPs = %v, %v", results, err)
	}

	created, err := c.CreateHCP(context.Background(), record.HCP{Name: "Dr. New"})
	if err != nil || created.ID != "h9" {
		t.Errorf("CreateHCP = %v, %v", created, err)
	}
}

func TestDo_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Interaction not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.GetInteraction(context.Background(), "missing"); err == nil {
		t.Fatal("expected an error for 404")
	}
}

func TestDo_MalformedBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.FetchInteractions(context.Background()); err == nil {
		t.Fatal("expected an error for a malformed body")
	}
}
