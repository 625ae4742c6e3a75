package record

import "time"

// InteractionType is the kind of HCP contact being logged.
type InteractionType string

const (
	TypeMeeting     InteractionType = "Meeting"
	TypeVirtualCall InteractionType = "Virtual Call"
	TypePhoneCall   InteractionType = "Phone Call"
	TypeConference  InteractionType = "Conference"
	TypeEmail       InteractionType = "Email"
)

// Interaction is a logged HCP interaction. The ID is assigned by the backend
// and is the only field the client treats as identity; everything else is
// optional free text from the form.
type Interaction struct {
	ID                string          `json:"id,omitempty"`
	HCPName           string          `json:"hcp_name"`
	HCPSpecialty      string          `json:"hcp_specialty,omitempty"`
	InteractionType   InteractionType `json:"interaction_type,omitempty"`
	Location          string          `json:"location,omitempty"`
	DurationMinutes   int             `json:"duration_minutes,omitempty"`
	DiscussionTopics  string          `json:"discussion_topics,omitempty"`
	ProductsDiscussed string          `json:"products_discussed,omitempty"`
	SamplesProvided   string          `json:"samples_provided,omitempty"`
	NextSteps         string          `json:"next_steps,omitempty"`
	Sentiment         string          `json:"sentiment,omitempty"`
	FollowUpDate      *time.Time      `json:"follow_up_date,omitempty"`
	SalesRepName      string          `json:"sales_rep_name,omitempty"`
	CreatedAt         time.Time       `json:"created_at,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at,omitempty"`
}

// InteractionUpdate is a partial update. Nil fields are left untouched.
type InteractionUpdate struct {
	HCPName           *string          `json:"hcp_name,omitempty"`
	HCPSpecialty      *string          `json:"hcp_specialty,omitempty"`
	InteractionType   *InteractionType `json:"interaction_type,omitempty"`
	Location          *string          `json:"location,omitempty"`
	DurationMinutes   *int             `json:"duration_minutes,omitempty"`
	DiscussionTopics  *string          `json:"discussion_topics,omitempty"`
	ProductsDiscussed *string          `json:"products_discussed,omitempty"`
	SamplesProvided   *string          `json:"samples_provided,omitempty"`
	NextSteps         *string          `json:"next_steps,omitempty"`
	Sentiment         *string          `json:"sentiment,omitempty"`
	SalesRepName      *string          `json:"sales_rep_name,omitempty"`
}

// HCP is a healthcare professional record.
type HCP struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	Location  string `json:"location,omitempty"`
}

// ChatMessage is one entry in the assistant transcript. Messages are
// immutable once created and only ever appended.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // ISO-8601
}
