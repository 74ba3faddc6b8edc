package store

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

type Tickets struct {
	kv  storage.KV
	now func() time.Time
}

func NewTickets(kv storage.KV) *Tickets {
	return &Tickets{kv: kv, now: time.Now}
}

type CreateTicket struct {
	UserID      string
	RequestType string // new_project | technical_issue
	IssueType   string
	ProjectType string
	Priority    string // explicit value wins over derivation
	Description string

	// Required for guest submissions (empty UserID).
	ContactName  string
	ContactEmail string
	ContactPhone string
	Company      string
}

type TicketPatch struct {
	Status      *string
	Priority    *string
	Category    *string
	Subject     *string
	Description *string
}

type CommentInput struct {
	AuthorID   string
	AuthorName string
	Body       string
	Staff      bool
}

var issueLabels = map[string]string{
	"bug":      "Bug",
	"feature":  "Feature request",
	"security": "Security issue",
	"downtime": "Site down",
	"payment":  "Payment problem",
	"other":    "General support",
}

func (s *Tickets) All(ctx context.Context) ([]models.Ticket, error) {
	return loadSlice[models.Ticket](ctx, s.kv, storage.KeyTickets)
}

func (s *Tickets) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	tickets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}
	return nil, nil
}

func (s *Tickets) ByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	tickets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create derives category, priority, subject and the ticket number, then
// appends the ticket. The ticket number is generated once and never changes;
// the 3-digit suffix is random, so collisions are possible and undetected.
func (s *Tickets) Create(ctx context.Context, in CreateTicket) (*models.Ticket, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.RequestType != models.RequestNewProject && in.RequestType != models.RequestTechnicalIssue {
		return nil, invalid("requestType", "must be new_project or technical_issue")
	}
	if in.Description == "" {
		return nil, invalid("description", "description is required")
	}
	if in.UserID == "" && normalizeEmail(in.ContactEmail) == "" {
		return nil, invalid("contactEmail", "contact email is required for guest tickets")
	}
	if in.Priority != "" && !models.ValidTicketPriority(in.Priority) {
		return nil, invalid("priority", "unknown priority")
	}

	now := s.now()
	t := models.Ticket{
		ID:           NewID(now),
		TicketNumber: ticketNumber(now),
		UserID:       in.UserID,
		RequestType:  in.RequestType,
		IssueType:    in.IssueType,
		ProjectType:  in.ProjectType,
		Category:     deriveCategory(in),
		Priority:     derivePriority(in),
		Status:       "new",
		Subject:      deriveSubject(in),
		Description:  in.Description,
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: normalizeEmail(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Company:      strings.TrimSpace(in.Company),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tickets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	tickets = append(tickets, t)
	if err := saveSlice(ctx, s.kv, storage.KeyTickets, tickets); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update merges the patch and bumps UpdatedAt. Status transitions are
// unconstrained; moving into resolved/closed stamps the matching timestamp
// if it is not already set.
func (s *Tickets) Update(ctx context.Context, id string, p TicketPatch) (*models.Ticket, error) {
	tickets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		t := &tickets[i]
		now := s.now()
		if p.Status != nil {
			if !models.ValidTicketStatus(*p.Status) {
				return nil, invalid("status", "unknown status")
			}
			t.Status = *p.Status
			switch *p.Status {
			case "resolved":
				if t.ResolvedAt == nil {
					at := now
					t.ResolvedAt = &at
				}
			case "closed":
				if t.ClosedAt == nil {
					at := now
					t.ClosedAt = &at
				}
			}
		}
		if p.Priority != nil {
			if !models.ValidTicketPriority(*p.Priority) {
				return nil, invalid("priority", "unknown priority")
			}
			t.Priority = *p.Priority
		}
		if p.Category != nil {
			t.Category = strings.TrimSpace(*p.Category)
		}
		if p.Subject != nil {
			t.Subject = strings.TrimSpace(*p.Subject)
		}
		if p.Description != nil {
			t.Description = strings.TrimSpace(*p.Description)
		}
		t.UpdatedAt = now
		if err := saveSlice(ctx, s.kv, storage.KeyTickets, tickets); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, ErrNotFound
}

// AddComment appends a comment and stamps FirstResponseAt on the first staff
// reply.
func (s *Tickets) AddComment(ctx context.Context, id string, in CommentInput) (*models.Ticket, error) {
	in.Body = strings.TrimSpace(in.Body)
	if in.Body == "" {
		return nil, invalid("body", "comment body is required")
	}
	tickets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		t := &tickets[i]
		now := s.now()
		t.Comments = append(t.Comments, models.TicketComment{
			ID:         uuid.NewString(),
			AuthorID:   in.AuthorID,
			AuthorName: in.AuthorName,
			Body:       in.Body,
			Staff:      in.Staff,
			CreatedAt:  now,
		})
		if in.Staff && t.FirstResponseAt == nil {
			at := now
			t.FirstResponseAt = &at
		}
		t.UpdatedAt = now
		if err := saveSlice(ctx, s.kv, storage.KeyTickets, tickets); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, ErrNotFound
}

func (s *Tickets) Delete(ctx context.Context, id string) error {
	tickets, err := s.All(ctx)
	if err != nil {
		return err
	}
	kept := tickets[:0]
	for _, t := range tickets {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tickets) {
		return ErrNotFound
	}
	return saveSlice(ctx, s.kv, storage.KeyTickets, kept)
}

// -----------------------------------------------------------------------------
// Derivation rules
// -----------------------------------------------------------------------------

func deriveCategory(in CreateTicket) string {
	if in.RequestType == models.RequestNewProject {
		return "project"
	}
	switch in.IssueType {
	case "bug":
		return "bug"
	case "feature":
		return "feature"
	default:
		return "support"
	}
}

func derivePriority(in CreateTicket) string {
	if in.Priority != "" {
		return in.Priority
	}
	switch in.IssueType {
	case "security", "downtime":
		return "critical"
	case "payment", "bug":
		return "high"
	default:
		return "normal"
	}
}

func deriveSubject(in CreateTicket) string {
	if in.RequestType == models.RequestNewProject {
		if in.ProjectType != "" {
			return "New project inquiry: " + humanize(in.ProjectType)
		}
		return "New project inquiry"
	}
	if label, ok := issueLabels[in.IssueType]; ok {
		return label
	}
	return "Technical issue"
}

func ticketNumber(now time.Time) string {
	return fmt.Sprintf("TKT-%s-%03d", now.Format("20060102"), rand.Intn(1000))
}

func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
