package handlers

import (
	"encoding/json"
	"net/http"

	"zenweb/internal/models"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type ContactHTTP struct {
	contact *store.Contact
}

func NewContactHTTP(contact *store.Contact) *ContactHTTP {
	return &ContactHTTP{contact: contact}
}

// GET /api/contact (public)
func (h *ContactHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.contact.Get(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"contact": info})
	}
}

// PUT /api/contact (admin)
func (h *ContactHTTP) Put() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.ContactInfo
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		info, err := h.contact.Put(r.Context(), in)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"contact": info})
	}
}
