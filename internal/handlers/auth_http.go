package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"zenweb/internal/middleware"
	"zenweb/internal/models"
	"zenweb/internal/service"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type AuthHTTP struct {
	svc   *service.AuthService
	users *store.Users
}

func NewAuthHTTP(svc *service.AuthService, users *store.Users) *AuthHTTP {
	return &AuthHTTP{svc: svc, users: users}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		// Lax works for same-origin (frontend via reverse proxy).
		SameSite: http.SameSiteLaxMode,
		// Set true behind HTTPS in prod
		Secure:  false,
		Expires: time.Now().Add(24 * time.Hour),
	})
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string         `json:"email"`
			Name     string         `json:"name"`
			Password string         `json:"password"`
			Company  string         `json:"company"`
			Phone    string         `json:"phone"`
			Address  models.Address `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), service.RegisterInput{
			Email:    in.Email,
			Name:     in.Name,
			Password: in.Password,
			Company:  in.Company,
			Phone:    in.Phone,
			Address:  in.Address,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusCreated, map[string]any{"user": u.WithoutHash()})
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		token, u, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		setSessionCookie(w, token)
		// Token also in the body for non-browser clients (Bearer auth).
		utils.OK(w, http.StatusOK, map[string]any{
			"user":  u.WithoutHash(),
			"token": token,
		})
	}
}

func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,              // expire immediately
			Expires:  time.Unix(0, 0), // for older browsers
		})
		utils.OK(w, http.StatusOK, nil)
	}
}

func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), middleware.CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil {
			storeError(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"user": u.WithoutHash()})
	}
}
