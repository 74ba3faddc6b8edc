package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

func TestCreateTicketNumberFormat(t *testing.T) {
	ctx := context.Background()
	s := NewTickets(storage.NewMemory())

	tk, err := s.Create(ctx, CreateTicket{
		UserID:      "u1",
		RequestType: models.RequestTechnicalIssue,
		IssueType:   "bug",
		Description: "checkout broken",
	})
	require.NoError(t, err)

	want := regexp.MustCompile(`^TKT-` + time.Now().Format("20060102") + `-\d{3}$`)
	require.Regexp(t, want, tk.TicketNumber)
	require.Equal(t, "new", tk.Status)
}

func TestTicketDerivation(t *testing.T) {
	cases := []struct {
		name         string
		in           CreateTicket
		wantCategory string
		wantPriority string
	}{
		{
			name:         "new project",
			in:           CreateTicket{RequestType: models.RequestNewProject, ProjectType: "ecommerce"},
			wantCategory: "project",
			wantPriority: "normal",
		},
		{
			name:         "bug",
			in:           CreateTicket{RequestType: models.RequestTechnicalIssue, IssueType: "bug"},
			wantCategory: "bug",
			wantPriority: "high",
		},
		{
			name:         "feature",
			in:           CreateTicket{RequestType: models.RequestTechnicalIssue, IssueType: "feature"},
			wantCategory: "feature",
			wantPriority: "normal",
		},
		{
			name:         "security outranks everything",
			in:           CreateTicket{RequestType: models.RequestTechnicalIssue, IssueType: "security"},
			wantCategory: "support",
			wantPriority: "critical",
		},
		{
			name:         "downtime is critical",
			in:           CreateTicket{RequestType: models.RequestTechnicalIssue, IssueType: "downtime"},
			wantCategory: "support",
			wantPriority: "critical",
		},
		{
			name:         "payment is high",
			in:           CreateTicket{RequestType: models.RequestTechnicalIssue, IssueType: "payment"},
			wantCategory: "support",
			wantPriority: "high",
		},
		{
			name: "explicit priority wins",
			in: CreateTicket{
				RequestType: models.RequestTechnicalIssue, IssueType: "security", Priority: "low",
			},
			wantCategory: "support",
			wantPriority: "low",
		},
	}

	ctx := context.Background()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTickets(storage.NewMemory())
			tc.in.UserID = "u1"
			tc.in.Description = "details"
			tk, err := s.Create(ctx, tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.wantCategory, tk.Category)
			require.Equal(t, tc.wantPriority, tk.Priority)
			require.NotEmpty(t, tk.Subject)
		})
	}
}

func TestGuestTicketNeedsContactEmail(t *testing.T) {
	ctx := context.Background()
	s := NewTickets(storage.NewMemory())

	_, err := s.Create(ctx, CreateTicket{
		RequestType: models.RequestNewProject,
		Description: "please build a site",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	tk, err := s.Create(ctx, CreateTicket{
		RequestType:  models.RequestNewProject,
		Description:  "please build a site",
		ContactName:  "Guest",
		ContactEmail: "Guest@Example.com",
	})
	require.NoError(t, err)
	require.Empty(t, tk.UserID)
	require.Equal(t, "guest@example.com", tk.ContactEmail)
}

func TestStatusTransitionStampsTimestamps(t *testing.T) {
	ctx := context.Background()
	s := NewTickets(storage.NewMemory())
	s.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), time.Minute)

	tk, err := s.Create(ctx, CreateTicket{
		UserID: "u1", RequestType: models.RequestTechnicalIssue, Description: "x",
	})
	require.NoError(t, err)

	resolved := "resolved"
	tk2, err := s.Update(ctx, tk.ID, TicketPatch{Status: &resolved})
	require.NoError(t, err)
	require.NotNil(t, tk2.ResolvedAt)
	firstResolved := *tk2.ResolvedAt

	// Any status can follow any other; ResolvedAt is stamped only once.
	open := "open"
	_, err = s.Update(ctx, tk.ID, TicketPatch{Status: &open})
	require.NoError(t, err)
	tk3, err := s.Update(ctx, tk.ID, TicketPatch{Status: &resolved})
	require.NoError(t, err)
	require.Equal(t, firstResolved, *tk3.ResolvedAt)

	closed := "closed"
	tk4, err := s.Update(ctx, tk.ID, TicketPatch{Status: &closed})
	require.NoError(t, err)
	require.NotNil(t, tk4.ClosedAt)

	bogus := "archived"
	_, err = s.Update(ctx, tk.ID, TicketPatch{Status: &bogus})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestFirstStaffCommentStampsFirstResponse(t *testing.T) {
	ctx := context.Background()
	s := NewTickets(storage.NewMemory())
	s.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), time.Minute)

	tk, err := s.Create(ctx, CreateTicket{
		UserID: "u1", RequestType: models.RequestTechnicalIssue, Description: "x",
	})
	require.NoError(t, err)

	// Customer comments never stamp first response.
	tk2, err := s.AddComment(ctx, tk.ID, CommentInput{AuthorID: "u1", AuthorName: "A", Body: "any update?"})
	require.NoError(t, err)
	require.Nil(t, tk2.FirstResponseAt)

	tk3, err := s.AddComment(ctx, tk.ID, CommentInput{AuthorID: "adm", AuthorName: "Staff", Body: "on it", Staff: true})
	require.NoError(t, err)
	require.NotNil(t, tk3.FirstResponseAt)
	first := *tk3.FirstResponseAt

	tk4, err := s.AddComment(ctx, tk.ID, CommentInput{AuthorID: "adm", AuthorName: "Staff", Body: "fixed", Staff: true})
	require.NoError(t, err)
	require.Equal(t, first, *tk4.FirstResponseAt)
	require.Len(t, tk4.Comments, 3)
}

func TestTicketsByUser(t *testing.T) {
	ctx := context.Background()
	s := NewTickets(storage.NewMemory())

	for _, uid := range []string{"u1", "u2", "u1"} {
		_, err := s.Create(ctx, CreateTicket{
			UserID: uid, RequestType: models.RequestTechnicalIssue, Description: "x",
		})
		require.NoError(t, err)
	}
	mine, err := s.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
}
