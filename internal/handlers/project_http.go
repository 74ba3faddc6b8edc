package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zenweb/internal/middleware"
	"zenweb/internal/models"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type ProjectHTTP struct {
	projects *store.Projects
}

func NewProjectHTTP(projects *store.Projects) *ProjectHTTP {
	return &ProjectHTTP{projects: projects}
}

// GET /api/projects — admins see all, users their own.
func (h *ProjectHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, _ := utils.GetString(r.Context(), middleware.CtxRole)
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		var (
			items []models.Project
			err   error
		)
		if role == models.RoleAdmin {
			items, err = h.projects.All(r.Context())
		} else {
			items, err = h.projects.ByUser(r.Context(), uid)
		}
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"projects": items, "total": len(items)})
	}
}

// POST /api/projects
func (h *ProjectHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Priority    string `json:"priority"`
		Budget      string `json:"budget"`
		Timeline    string `json:"timeline"`
		Description string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, err := h.projects.Create(r.Context(), store.CreateProject{
			UserID:      uid,
			Name:        in.Name,
			Type:        in.Type,
			Priority:    in.Priority,
			Budget:      in.Budget,
			Timeline:    in.Timeline,
			Description: in.Description,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusCreated, map[string]any{"project": p})
	}
}

// GET /api/projects/{id}
func (h *ProjectHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.authorize(w, r)
		if !ok {
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"project": p})
	}
}

// PUT /api/projects/{id}
func (h *ProjectHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name        *string `json:"name"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		Budget      *string `json:"budget"`
		Timeline    *string `json:"timeline"`
		Description *string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.authorize(w, r)
		if !ok {
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		updated, err := h.projects.Update(r.Context(), p.ID, store.ProjectPatch{
			Name:        in.Name,
			Status:      in.Status,
			Priority:    in.Priority,
			Budget:      in.Budget,
			Timeline:    in.Timeline,
			Description: in.Description,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"project": updated})
	}
}

// DELETE /api/projects/{id}
func (h *ProjectHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.authorize(w, r)
		if !ok {
			return
		}
		if err := h.projects.Delete(r.Context(), p.ID); err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, nil)
	}
}

// authorize loads the project and enforces owner-or-admin access.
func (h *ProjectHTTP) authorize(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	p, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return nil, false
	}
	if p == nil {
		utils.Error(w, http.StatusNotFound, "not found")
		return nil, false
	}
	role, _ := utils.GetString(r.Context(), middleware.CtxRole)
	uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
	if role != models.RoleAdmin && p.UserID != uid {
		utils.Error(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return p, true
}
