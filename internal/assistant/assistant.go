// Package assistant implements the deterministic chat responder behind
// POST /chat/. It classifies the user's intent by keyword, extracts fields
// from log requests, and keeps its own in-memory log of what it recorded.
package assistant

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/outfield-crm/outfield/internal/collection"
	"github.com/outfield-crm/outfield/internal/extract"
	"github.com/outfield-crm/outfield/internal/record"
)

var (
	logWords    = []string{"log", "met", "discussed", "meeting"}
	searchWords = []string{"search", "find"}
	listWords   = []string{"list", "all", "show"}
)

type Assistant struct {
	engine *extract.Engine
	logger *slog.Logger

	mu      sync.Mutex
	counter int
	logged  *collection.Collection[record.Interaction]
}

func New(logger *slog.Logger) *Assistant {
	return &Assistant{
		engine: extract.NewEngine(),
		logger: logger,
		logged: collection.New(func(i record.Interaction) string { return i.ID }),
	}
}

// Respond answers one chat message. It never fails: unknown input gets the
// help text.
func (a *Assistant) Respond(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, logWords):
		return a.logInteraction(message)
	case containsAny(lower, searchWords):
		return a.search()
	case containsAny(lower, listWords):
		return a.listAll()
	default:
		return helpText
	}
}

// Logged returns the interactions recorded through chat so far.
func (a *Assistant) Logged() []record.Interaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.logged.Items()
}

func (a *Assistant) logInteraction(message string) string {
	c := a.engine.Extract(message)

	hcpName := c[extract.FieldHCPName]
	if hcpName == "" {
		hcpName = "Unknown HCP"
	}
	products := c[extract.FieldProducts]
	if products == "" {
		products = "Not specified"
	}
	sentiment := c[extract.FieldSentiment]

	a.mu.Lock()
	a.counter++
	id := strconv.Itoa(a.counter)
	a.logged.Append(record.Interaction{
		ID:                id,
		HCPName:           hcpName,
		DiscussionTopics:  message,
		ProductsDiscussed: products,
		Sentiment:         sentiment,
		CreatedAt:         time.Now().UTC(),
	})
	a.mu.Unlock()

	a.logger.Info("chat interaction logged", "id", id, "hcp", hcpName, "sentiment", sentiment)

	summary := message
	if len(summary) > 150 {
		summary = summary[:150] + "..."
	}
	return fmt.Sprintf(
		"Interaction logged.\n\nID: %s\nHCP: %s\nProducts: %s\nSentiment: %s\nSummary: %s",
		id, hcpName, products, sentiment, summary,
	)
}

func (a *Assistant) search() string {
	a.mu.Lock()
	items := a.logged.Items()
	a.mu.Unlock()

	if len(items) == 0 {
		return "No interactions found. Please log some interactions first."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d interaction(s):\n", len(items))
	for _, it := range items {
		fmt.Fprintf(&b, "- ID %s: %s (%s sentiment)\n", it.ID, it.HCPName, it.Sentiment)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *Assistant) listAll() string {
	a.mu.Lock()
	items := a.logged.Items()
	a.mu.Unlock()

	if len(items) == 0 {
		return "No interactions logged yet. Start by logging your first interaction."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total interactions: %d\n", len(items))
	for _, it := range items {
		fmt.Fprintf(&b, "- ID %s: %s - %s (%s)\n", it.ID, it.HCPName, it.ProductsDiscussed, it.Sentiment)
	}
	return strings.TrimRight(b.String(), "\n")
}

const helpText = `I can help you:
- Log interactions: describe the meeting, e.g. "Met Dr. Smith, discussed Product X, very positive"
- Search interactions: "Search for cardiologists"
- List all: "Show all interactions"`

// containsAny matches whole words, not substrings, so "cardiologists" does
// not read as a "log" request.
func containsAny(s string, words []string) bool {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}
