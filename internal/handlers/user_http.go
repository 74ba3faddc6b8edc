package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"zenweb/internal/models"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type UserHTTP struct {
	users *store.Users
}

func NewUserHTTP(users *store.Users) *UserHTTP {
	return &UserHTTP{users: users}
}

// GET /api/users?q=&role= (admin)
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
		role := strings.TrimSpace(r.URL.Query().Get("role"))

		users, err := h.users.All(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		out := make([]models.UserAccount, 0, len(users))
		for _, u := range users {
			if role != "" && u.Role != role {
				continue
			}
			if q != "" &&
				!strings.Contains(strings.ToLower(u.Email), q) &&
				!strings.Contains(strings.ToLower(u.Name), q) {
				continue
			}
			out = append(out, u.WithoutHash())
		}
		utils.OK(w, http.StatusOK, map[string]any{"users": out, "total": len(out)})
	}
}

// GET /api/users/{id} (self or admin)
func (h *UserHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			storeError(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"user": u.WithoutHash()})
	}
}

// PUT /api/users/{id} (self or admin) — account edit form.
func (h *UserHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name    *string         `json:"name"`
		Company *string         `json:"company"`
		Phone   *string         `json:"phone"`
		Address *models.Address `json:"address"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), store.UserPatch{
			Name:    in.Name,
			Company: in.Company,
			Phone:   in.Phone,
			Address: in.Address,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"user": u.WithoutHash()})
	}
}

// PATCH /api/users/{id}/role (admin)
func (h *UserHTTP) UpdateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Role == "" {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		u, err := h.users.SetRole(r.Context(), chi.URLParam(r, "id"), in.Role)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"user": u.WithoutHash()})
	}
}

// DELETE /api/users/{id} (admin)
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, nil)
	}
}
