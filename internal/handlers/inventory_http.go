package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zenweb/internal/store"
	"zenweb/internal/utils"
)

// InventoryHTTP backs the admin hardware/location screens. All routes are
// admin-gated in the router.
type InventoryHTTP struct {
	inv *store.Inventory
}

func NewInventoryHTTP(inv *store.Inventory) *InventoryHTTP {
	return &InventoryHTTP{inv: inv}
}

// GET /api/hardware
func (h *InventoryHTTP) ListHardware() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.inv.Hardware(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"hardware": items, "total": len(items)})
	}
}

// POST /api/hardware
func (h *InventoryHTTP) CreateHardware() http.HandlerFunc {
	type inDTO struct {
		Name         string `json:"name"`
		Type         string `json:"type"`
		SerialNumber string `json:"serialNumber"`
		LocationID   string `json:"locationId"`
		Status       string `json:"status"`
		Notes        string `json:"notes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		hw, err := h.inv.CreateHardware(r.Context(), store.CreateHardware{
			Name:         in.Name,
			Type:         in.Type,
			SerialNumber: in.SerialNumber,
			LocationID:   in.LocationID,
			Status:       in.Status,
			Notes:        in.Notes,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusCreated, map[string]any{"hardware": hw})
	}
}

// PUT /api/hardware/{id}
func (h *InventoryHTTP) UpdateHardware() http.HandlerFunc {
	type inDTO struct {
		Name         *string `json:"name"`
		Type         *string `json:"type"`
		SerialNumber *string `json:"serialNumber"`
		LocationID   *string `json:"locationId"`
		Status       *string `json:"status"`
		Notes        *string `json:"notes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		hw, err := h.inv.UpdateHardware(r.Context(), chi.URLParam(r, "id"), store.HardwarePatch{
			Name:         in.Name,
			Type:         in.Type,
			SerialNumber: in.SerialNumber,
			LocationID:   in.LocationID,
			Status:       in.Status,
			Notes:        in.Notes,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"hardware": hw})
	}
}

// DELETE /api/hardware/{id}
func (h *InventoryHTTP) DeleteHardware() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.inv.DeleteHardware(r.Context(), chi.URLParam(r, "id")); err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, nil)
	}
}

// GET /api/hardware/selection
func (h *InventoryHTTP) GetSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := h.inv.Selection(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"selection": ids})
	}
}

// PUT /api/hardware/selection
func (h *InventoryHTTP) PutSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Selection []string `json:"selection"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		ids, err := h.inv.SetSelection(r.Context(), in.Selection)
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"selection": ids})
	}
}

// GET /api/locations
func (h *InventoryHTTP) ListLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locs, err := h.inv.Locations(r.Context())
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"locations": locs, "total": len(locs)})
	}
}

// POST /api/locations
func (h *InventoryHTTP) CreateLocation() http.HandlerFunc {
	type inDTO struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Notes   string `json:"notes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		l, err := h.inv.CreateLocation(r.Context(), store.CreateLocation{
			Name: in.Name, Address: in.Address, Notes: in.Notes,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusCreated, map[string]any{"location": l})
	}
}

// PUT /api/locations/{id}
func (h *InventoryHTTP) UpdateLocation() http.HandlerFunc {
	type inDTO struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		l, err := h.inv.UpdateLocation(r.Context(), chi.URLParam(r, "id"), store.LocationPatch{
			Name: in.Name, Address: in.Address, Notes: in.Notes,
		})
		if err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, map[string]any{"location": l})
	}
}

// DELETE /api/locations/{id}
// Rejected with 409 while hardware still references the location.
func (h *InventoryHTTP) DeleteLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.inv.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
			storeError(w, err)
			return
		}
		utils.OK(w, http.StatusOK, nil)
	}
}
