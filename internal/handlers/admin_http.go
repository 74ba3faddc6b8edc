package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zenweb/internal/service"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

// AdminHTTP carries the admin-only account operations.
type AdminHTTP struct {
	svc   *service.AuthService
	users *store.Users
}

func NewAdminHTTP(svc *service.AuthService, users *store.Users) *AdminHTTP {
	return &AdminHTTP{svc: svc, users: users}
}

// POST /api/admin/impersonate/{id}
// Swaps the caller's session for one belonging to the target user.
func (h *AdminHTTP) Impersonate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			storeError(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		token, err := h.svc.TokenFor(u)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		setSessionCookie(w, token)
		utils.OK(w, http.StatusOK, map[string]any{
			"user":  u.WithoutHash(),
			"token": token,
		})
	}
}

// POST /api/admin/users/{id}/reset-password
// Generates a temporary password, stores its hash and returns it once.
func (h *AdminHTTP) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		u, err := h.users.GetByID(r.Context(), id)
		if err != nil {
			storeError(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}

		temp, err := tempPassword()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		hash, err := utils.HashPassword(temp)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := h.users.SetPasswordHash(r.Context(), id, hash); err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"tempPassword": temp})
	}
}

func tempPassword() (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
