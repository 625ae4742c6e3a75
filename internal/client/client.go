// Package client is the HTTP/JSON client for the outfield API. Every call
// returns a plain error on network failure, non-2xx status or a malformed
// body; callers surface those through the dispatch layer, never past it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/outfield-crm/outfield/internal/record"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatReply is the assistant's answer to one chat message.
type ChatReply struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// SendChat posts one chat message and returns the assistant reply.
func (c *Client) SendChat(ctx context.Context, message string) (ChatReply, error) {
	var out ChatReply
	err := c.do(ctx, http.MethodPost, "/chat/", chatRequest{Message: message}, &out)
	return out, err
}

// FetchInteractions returns all active interactions.
func (c *Client) FetchInteractions(ctx context.Context) ([]record.Interaction, error) {
	var out []record.Interaction
	err := c.do(ctx, http.MethodGet, "/interactions/", nil, &out)
	return out, err
}

// GetInteraction returns a single interaction by id.
func (c *Client) GetInteraction(ctx context.Context, id string) (record.Interaction, error) {
	var out record.Interaction
	err := c.do(ctx, http.MethodGet, "/interactions/"+id, nil, &out)
	return out, err
}

// CreateInteraction submits a new interaction and returns it with the
// backend-assigned id.
func (c *Client) CreateInteraction(ctx context.Context, in record.Interaction) (record.Interaction, error) {
	var out record.Interaction
	err := c.do(ctx, http.MethodPost, "/interactions/", in, &out)
	return out, err
}

// UpdateInteraction applies a partial update and returns the full record.
func (c *Client) UpdateInteraction(ctx context.Context, id string, upd record.InteractionUpdate) (record.Interaction, error) {
	var out record.Interaction
	err := c.do(ctx, http.MethodPut, "/interactions/"+id, upd, &out)
	return out, err
}

// DeleteInteraction removes the interaction. The deleted id is synthesized
// client-side; the server body is discarded.
func (c *Client) DeleteInteraction(ctx context.Context, id string) (string, error) {
	if err := c.do(ctx, http.MethodDelete, "/interactions/"+id, nil, nil); err != nil {
		return "", err
	}
	return id, nil
}

type hcpListResponse struct {
	HCPs []record.HCP `json:"hcps"`
}

type hcpSearchRequest struct {
	Query string `json:"query"`
}

type hcpSearchResponse struct {
	Results []record.HCP `json:"results"`
}

type hcpCreateResponse struct {
	HCP record.HCP `json:"hcp"`
}

// FetchHCPs returns all known healthcare professionals.
func (c *Client) FetchHCPs(ctx context.Context) ([]record.HCP, error) {
	var out hcpListResponse
	err := c.do(ctx, http.MethodGet, "/api/hcp", nil, &out)
	return out.HCPs, err
}

// SearchHCPs returns HCPs matching the free-text query.
func (c *Client) SearchHCPs(ctx context.Context, query string) ([]record.HCP, error) {
	var out hcpSearchResponse
	err := c.do(ctx, http.MethodPost, "/api/tools/search-hcp", hcpSearchRequest{Query: query}, &out)
	return out.Results, err
}

// CreateHCP registers a new HCP and returns it with its id.
func (c *Client) CreateHCP(ctx context.Context, in record.HCP) (record.HCP, error) {
	var out hcpCreateResponse
	err := c.do(ctx, http.MethodPost, "/api/hcp", in, &out)
	return out.HCP, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
