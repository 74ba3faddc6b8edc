package models

import "time"

const (
	RequestNewProject     = "new_project"
	RequestTechnicalIssue = "technical_issue"
)

var TicketStatuses = []string{
	"new", "open", "pending", "in_progress", "waiting_customer", "resolved", "closed",
}

var TicketPriorities = []string{"low", "normal", "high", "critical"}

type Ticket struct {
	ID           string `json:"id"`
	TicketNumber string `json:"ticketNumber"` // TKT-YYYYMMDD-NNN, set once at creation
	UserID       string `json:"userId,omitempty"`

	RequestType string `json:"requestType"` // new_project | technical_issue
	IssueType   string `json:"issueType,omitempty"`
	ProjectType string `json:"projectType,omitempty"`

	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Subject     string `json:"subject"`
	Description string `json:"description"`

	// Contact details for unauthenticated submitters.
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Company      string `json:"company,omitempty"`

	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	FirstResponseAt *time.Time `json:"firstResponseAt,omitempty"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`

	Comments []TicketComment `json:"comments,omitempty"`
}

type TicketComment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId,omitempty"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	Staff      bool      `json:"staff"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ValidTicketStatus(s string) bool {
	for _, v := range TicketStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidTicketPriority(p string) bool {
	for _, v := range TicketPriorities {
		if v == p {
			return true
		}
	}
	return false
}
