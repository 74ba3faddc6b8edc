package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"zenweb/internal/middleware"
	"zenweb/internal/models"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type TicketHTTP struct {
	tickets *store.Tickets
	users   *store.Users
}

func NewTicketHTTP(tickets *store.Tickets, users *store.Users) *TicketHTTP {
	return &TicketHTTP{tickets: tickets, users: users}
}

// GET /api/tickets?status=&priority=&q=
// Admins see everything; regular users only their own tickets.
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		q := strings.ToLower(strings.TrimSpace(qv.Get("q")))
		status := strings.TrimSpace(qv.Get("status"))
		priority := strings.TrimSpace(qv.Get("priority"))

		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		items, err := h.tickets.All(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		filtered := make([]models.Ticket, 0, len(items))
		for _, t := range items {
			if role != models.RoleAdmin && t.UserID != uid {
				continue
			}
			if status != "" && t.Status != status {
				continue
			}
			if priority != "" && t.Priority != priority {
				continue
			}
			if q != "" &&
				!strings.Contains(strings.ToLower(t.Subject), q) &&
				!strings.Contains(strings.ToLower(t.Description), q) &&
				!strings.Contains(strings.ToLower(t.TicketNumber), q) {
				continue
			}
			filtered = append(filtered, t)
		}
		utils.OK(w, http.StatusOK, map[string]any{
			"tickets": filtered,
			"total":   len(filtered),
		})
	}
}

// POST /api/tickets
// Guest submissions are allowed: without a session the contact fields
// identify the submitter.
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		RequestType  string `json:"requestType"`
		IssueType    string `json:"issueType"`
		ProjectType  string `json:"projectType"`
		Priority     string `json:"priority"`
		Description  string `json:"description"`
		ContactName  string `json:"contactName"`
		ContactEmail string `json:"contactEmail"`
		ContactPhone string `json:"contactPhone"`
		Company      string `json:"company"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		t, err := h.tickets.Create(r.Context(), store.CreateTicket{
			UserID:       uid,
			RequestType:  in.RequestType,
			IssueType:    in.IssueType,
			ProjectType:  in.ProjectType,
			Priority:     in.Priority,
			Description:  in.Description,
			ContactName:  in.ContactName,
			ContactEmail: in.ContactEmail,
			ContactPhone: in.ContactPhone,
			Company:      in.Company,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusCreated, map[string]any{"ticket": t})
	}
}

// GET /api/tickets/user/{id}
func (h *TicketHTTP) ByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		items, err := h.tickets.ByUser(r.Context(), id)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{
			"tickets": items,
			"total":   len(items),
		})
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := h.load(w, r)
		if !ok {
			return
		}
		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		if role != models.RoleAdmin && (t.UserID == "" || t.UserID != uid) {
			utils.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"ticket": t})
	}
}

// PUT /api/tickets/{id} (admin)
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		Category    *string `json:"category"`
		Subject     *string `json:"subject"`
		Description *string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		t, err := h.tickets.Update(r.Context(), id, store.TicketPatch{
			Status:      in.Status,
			Priority:    in.Priority,
			Category:    in.Category,
			Subject:     in.Subject,
			Description: in.Description,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"ticket": t})
	}
}

// DELETE /api/tickets/{id} (admin)
func (h *TicketHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.tickets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, nil)
	}
}

// POST /api/tickets/{id}/comments
func (h *TicketHTTP) AddComment() http.HandlerFunc {
	type inDTO struct {
		Body string `json:"body"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := h.load(w, r)
		if !ok {
			return
		}
		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		if role != models.RoleAdmin && t.UserID != uid {
			utils.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		name := ""
		if u, err := h.users.GetByID(r.Context(), uid); err == nil && u != nil {
			name = u.Name
		}
		updated, err := h.tickets.AddComment(r.Context(), t.ID, store.CommentInput{
			AuthorID:   uid,
			AuthorName: name,
			Body:       in.Body,
			Staff:      role == models.RoleAdmin,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"ticket": updated})
	}
}

func (h *TicketHTTP) load(w http.ResponseWriter, r *http.Request) (*models.Ticket, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.Error(w, http.StatusBadRequest, "missing id")
		return nil, false
	}
	t, err := h.tickets.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return nil, false
	}
	if t == nil {
		utils.Error(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return t, true
}
