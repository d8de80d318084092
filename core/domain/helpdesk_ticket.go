package domain

import "time"

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// IsValidStatus checks whether s is a declared ticket status.
func IsValidStatus(s TicketStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for one support request. The Enrichment block is
// computed once at creation and refreshed only by an explicit re-analysis.
type Ticket struct {
	ID          string `bson:"id" json:"id"`
	Subject     string `bson:"subject" json:"subject"`
	Description string `bson:"description" json:"description"`

	RequesterName  string `bson:"requester_name,omitempty" json:"requester_name,omitempty"`
	RequesterEmail string `bson:"requester_email,omitempty" json:"requester_email,omitempty"`

	Status   TicketStatus `bson:"status" json:"status"`
	Priority Priority     `bson:"priority" json:"priority"`

	Enrichment *EnrichmentRecord `bson:"enrichment,omitempty" json:"enrichment,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TicketFilter narrows List queries. Zero values mean "no constraint".
type TicketFilter struct {
	Status    TicketStatus
	Category  TicketCategory
	Priority  Priority
	Escalated *bool

	Limit  int
	Offset int
}

// TicketStats is the aggregate view the admin dashboard renders.
type TicketStats struct {
	Total      int64                    `json:"total"`
	ByStatus   map[TicketStatus]int64   `json:"by_status"`
	ByCategory map[TicketCategory]int64 `json:"by_category"`
	ByPriority map[Priority]int64       `json:"by_priority"`
	Escalated  int64                    `json:"escalated"`
}
