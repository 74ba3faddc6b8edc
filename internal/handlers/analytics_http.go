package handlers

import (
	"encoding/json"
	"net/http"

	"zenweb/internal/store"
	"zenweb/internal/utils"
)

type AnalyticsHTTP struct {
	analytics *store.Analytics
	settings  *store.Settings
}

func NewAnalyticsHTTP(analytics *store.Analytics, settings *store.Settings) *AnalyticsHTTP {
	return &AnalyticsHTTP{analytics: analytics, settings: settings}
}

// POST /api/analytics/pageview (public)
// Hits from excluded IPs are acknowledged but not recorded.
func (h *AnalyticsHTTP) PageView() http.HandlerFunc {
	type inDTO struct {
		SessionID string `json:"sessionId"`
		Path      string `json:"path"`
		Referrer  string `json:"referrer"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		ip := utils.ClientIP(r)
		doc, err := h.settings.Get(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		if doc.IPExcluded(ip) {
			utils.OK(w, http.StatusOK, map[string]any{"excluded": true})
			return
		}

		view, err := h.analytics.Record(r.Context(), store.PageViewInput{
			SessionID: in.SessionID,
			Path:      in.Path,
			Referrer:  in.Referrer,
			IP:        ip,
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusCreated, map[string]any{"sessionId": view.SessionID})
	}
}

// GET /api/analytics?days=30 (admin)
func (h *AnalyticsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := utils.QueryInt(r.URL.Query(), "days", 30)
		sum, err := h.analytics.Summary(r.Context(), days)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"analytics": sum})
	}
}

// GET /api/analytics/excluded-ips (admin)
func (h *AnalyticsHTTP) GetExcludedIPs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.settings.Get(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"excludedIps": doc.ExcludedIPs})
	}
}

// PUT /api/analytics/excluded-ips (admin)
func (h *AnalyticsHTTP) PutExcludedIPs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			ExcludedIPs []string `json:"excludedIps"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		doc, err := h.settings.SetExcludedIPs(r.Context(), in.ExcludedIPs)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"excludedIps": doc.ExcludedIPs})
	}
}

// GET /api/analytics/my-ip
// Lets the admin screen offer "exclude my IP" without guessing.
func (h *AnalyticsHTTP) MyIP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.OK(w, http.StatusOK, map[string]any{"ip": utils.ClientIP(r)})
	}
}
