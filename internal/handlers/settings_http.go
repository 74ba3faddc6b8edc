package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"zenweb/internal/models"
	"zenweb/internal/service"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type SettingsHTTP struct {
	settings *store.Settings
	sms      service.SMSSender
}

func NewSettingsHTTP(settings *store.Settings, sms service.SMSSender) *SettingsHTTP {
	return &SettingsHTTP{settings: settings, sms: sms}
}

// GET /api/settings (admin)
func (h *SettingsHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.settings.Get(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"settings": doc})
	}
}

// PUT /api/settings (admin)
func (h *SettingsHTTP) Put() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.Settings
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		doc, err := h.settings.Put(r.Context(), in)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"settings": doc})
	}
}

// POST /api/settings/test-sms (admin)
// Sends a test message to the configured notify phone, or an explicit "to".
func (h *SettingsHTTP) TestSMS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			To string `json:"to"`
		}
		// Body is optional.
		_ = json.NewDecoder(r.Body).Decode(&in)

		doc, err := h.settings.Get(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		if !doc.SMSEnabled {
			utils.Error(w, http.StatusBadRequest, "sms notifications are disabled")
			return
		}
		to := strings.TrimSpace(in.To)
		if to == "" {
			to = doc.NotifyPhone
		}
		if to == "" {
			utils.Error(w, http.StatusBadRequest, "no recipient phone configured")
			return
		}
		if err := h.sms.Send(r.Context(), to, "zenweb test message"); err != nil {
			utils.Error(w, http.StatusBadGateway, err.Error())
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"to": to})
	}
}
