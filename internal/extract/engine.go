package extract

import (
	"regexp"
	"strings"
)

// Candidate field names. These match the form surface's field names so a
// CandidateSet can be overlaid onto form state directly.
const (
	FieldHCPName     = "hcp_name"
	FieldProducts    = "products_discussed"
	FieldTopics      = "topics_discussed"
	FieldSentiment   = "sentiment"
	FieldMaterials   = "materials_shared"
	FieldSamples     = "samples_distributed"
)

// CandidateSet maps a field name to the value extracted for it. A key is
// present only when its rule matched; absence means "no opinion", never
// "clear this field". Sentiment is the one key that is always present.
type CandidateSet map[string]string

// Rule extracts a single field from free text. Keywords, when set, gate the
// rule on containment in the lowered text. Pattern runs against the raw text
// so captures keep their original casing. Fallback is used when the keywords
// hit but the pattern does not.
type Rule struct {
	Field     string
	Keywords  []string
	Pattern   *regexp.Regexp
	Transform func(groups []string) string
	Fallback  string
}

func (r Rule) apply(raw, lower string) (string, bool) {
	if len(r.Keywords) > 0 {
		hit := false
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return "", false
		}
	}
	if r.Pattern != nil {
		if m := r.Pattern.FindStringSubmatch(raw); m != nil {
			return r.Transform(m), true
		}
	}
	if r.Fallback != "" {
		return r.Fallback, true
	}
	return "", false
}

// defaultRules is the rule table, one rule per output field. Rules are
// evaluated independently; several may fire on the same input.
//
// The hcp_name pattern accepts an optional second name word only when it is
// title-cased in the raw text, so "Dr. Johnson about CardioMax" yields
// "Dr. Johnson" while "Dr. Sarah Chen" keeps both words.
var defaultRules = []Rule{
	{
		Field:   FieldHCPName,
		Pattern: regexp.MustCompile(`\b(?i:dr)\.?\s+([A-Za-z]+)(?:\s+([A-Z][A-Za-z]*))?`),
		Transform: func(g []string) string {
			name := g[1]
			if g[2] != "" {
				name += " " + g[2]
			}
			return "Dr. " + name
		},
	},
	{
		Field:     FieldProducts,
		Pattern:   regexp.MustCompile(`(?i)\bproduct\s+([A-Za-z0-9]+)`),
		Transform: func(g []string) string { return g[1] },
	},
	{
		Field:     FieldTopics,
		Pattern:   regexp.MustCompile(`(?i)\bdiscuss(?:ed)?\s+([^,.]+)`),
		Transform: func(g []string) string { return strings.TrimSpace(g[1]) },
	},
	{
		Field:     FieldMaterials,
		Keywords:  []string{"brochure", "material"},
		Pattern:   regexp.MustCompile(`(?i)\b(?:shared|provided)\s+([^,.]+)`),
		Transform: func(g []string) string { return strings.TrimSpace(g[1]) },
		Fallback:  "Brochure",
	},
	{
		Field:     FieldSamples,
		Pattern:   regexp.MustCompile(`(?i)\b(\d+)\s+sample`),
		Transform: func(g []string) string { return g[1] + " units" },
	},
}

// Engine turns a free-text sentence into a partial structured record.
// Extraction is deterministic and total: no match simply omits the field.
type Engine struct {
	rules []Rule
}

func NewEngine() *Engine {
	return &Engine{rules: defaultRules}
}

// Extract runs every rule against the text and classifies sentiment.
func (e *Engine) Extract(text string) CandidateSet {
	lower := strings.ToLower(text)
	out := CandidateSet{}
	for _, r := range e.rules {
		if v, ok := r.apply(text, lower); ok {
			out[r.Field] = v
		}
	}
	out[FieldSentiment] = string(Classify(text))
	return out
}
