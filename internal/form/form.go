// Package form models the interaction form surface: its live state and the
// reconciler that overlays extracted field candidates onto it.
package form

import (
	"time"

	"github.com/outfield-crm/outfield/internal/extract"
	"github.com/outfield-crm/outfield/internal/record"
)

// State is the live, user-editable form. It is a superset of the
// interaction record fields plus transient UI fields (date, time, voice
// note) that never leave the client.
type State struct {
	HCPName            string
	InteractionType    record.InteractionType
	Date               string
	Time               string
	Attendees          string
	TopicsDiscussed    string
	VoiceNote          string
	ProductsDiscussed  string
	MaterialsShared    string
	SamplesDistributed string
	Sentiment          string
	Outcomes           string
	FollowUpActions    string
}

// DefaultState returns a fresh form with the surface's defaults.
func DefaultState(now time.Time) State {
	return State{
		InteractionType: record.TypeMeeting,
		Date:            now.Format("2006-01-02"),
		Time:            "19:30",
		Sentiment:       string(extract.SentimentNeutral),
	}
}

// ToRecord maps the form onto the submission payload. The mapping follows
// the form surface's wiring: attendees are submitted as the location,
// materials as products discussed, and follow-up actions as next steps.
func (s State) ToRecord() record.Interaction {
	return record.Interaction{
		HCPName:           s.HCPName,
		InteractionType:   s.InteractionType,
		Location:          s.Attendees,
		DiscussionTopics:  s.TopicsDiscussed,
		ProductsDiscussed: s.MaterialsShared,
		SamplesProvided:   s.SamplesDistributed,
		NextSteps:         s.FollowUpActions,
	}
}

// Apply overlays candidates onto the form: every key present in candidates
// unconditionally wins, every absent key is copied from the input. Apply is
// a pure function; Apply(nil, s) == s.
func Apply(candidates extract.CandidateSet, s State) State {
	out := s
	for k, v := range candidates {
		switch k {
		case extract.FieldHCPName:
			out.HCPName = v
		case extract.FieldProducts:
			out.ProductsDiscussed = v
		case extract.FieldTopics:
			out.TopicsDiscussed = v
		case extract.FieldSentiment:
			out.Sentiment = v
		case extract.FieldMaterials:
			out.MaterialsShared = v
		case extract.FieldSamples:
			out.SamplesDistributed = v
		}
	}
	return out
}
