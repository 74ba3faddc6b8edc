package store

import (
	"context"
	"strings"
	"time"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

// Inventory covers the admin hardware/location screens. Hardware references
// its location by id; deleting a location still in use is rejected.
type Inventory struct {
	kv  storage.KV
	now func() time.Time
}

func NewInventory(kv storage.KV) *Inventory {
	return &Inventory{kv: kv, now: time.Now}
}

type CreateHardware struct {
	Name         string
	Type         string
	SerialNumber string
	LocationID   string
	Status       string
	Notes        string
}

type HardwarePatch struct {
	Name         *string
	Type         *string
	SerialNumber *string
	LocationID   *string
	Status       *string
	Notes        *string
}

type CreateLocation struct {
	Name    string
	Address string
	Notes   string
}

type LocationPatch struct {
	Name    *string
	Address *string
	Notes   *string
}

// -----------------------------------------------------------------------------
// Hardware
// -----------------------------------------------------------------------------

func (s *Inventory) Hardware(ctx context.Context) ([]models.Hardware, error) {
	return loadSlice[models.Hardware](ctx, s.kv, storage.KeyHardware)
}

func (s *Inventory) HardwareByID(ctx context.Context, id string) (*models.Hardware, error) {
	items, err := s.Hardware(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (s *Inventory) CreateHardware(ctx context.Context, in CreateHardware) (*models.Hardware, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}
	if in.Status == "" {
		in.Status = "active"
	}
	if !models.ValidHardwareStatus(in.Status) {
		return nil, invalid("status", "unknown status")
	}
	if in.LocationID != "" {
		if err := s.checkLocation(ctx, in.LocationID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	h := models.Hardware{
		ID:           NewID(now),
		Name:         in.Name,
		Type:         strings.TrimSpace(in.Type),
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		LocationID:   in.LocationID,
		Status:       in.Status,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	items, err := s.Hardware(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, h)
	if err := saveSlice(ctx, s.kv, storage.KeyHardware, items); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Inventory) UpdateHardware(ctx context.Context, id string, p HardwarePatch) (*models.Hardware, error) {
	items, err := s.Hardware(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		h := &items[i]
		if p.Name != nil {
			if strings.TrimSpace(*p.Name) == "" {
				return nil, invalid("name", "name is required")
			}
			h.Name = strings.TrimSpace(*p.Name)
		}
		if p.Type != nil {
			h.Type = strings.TrimSpace(*p.Type)
		}
		if p.SerialNumber != nil {
			h.SerialNumber = strings.TrimSpace(*p.SerialNumber)
		}
		if p.LocationID != nil {
			if *p.LocationID != "" {
				if err := s.checkLocation(ctx, *p.LocationID); err != nil {
					return nil, err
				}
			}
			h.LocationID = *p.LocationID
		}
		if p.Status != nil {
			if !models.ValidHardwareStatus(*p.Status) {
				return nil, invalid("status", "unknown status")
			}
			h.Status = *p.Status
		}
		if p.Notes != nil {
			h.Notes = strings.TrimSpace(*p.Notes)
		}
		h.UpdatedAt = s.now()
		if err := saveSlice(ctx, s.kv, storage.KeyHardware, items); err != nil {
			return nil, err
		}
		return h, nil
	}
	return nil, ErrNotFound
}

func (s *Inventory) DeleteHardware(ctx context.Context, id string) error {
	items, err := s.Hardware(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, h := range items {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(items) {
		return ErrNotFound
	}
	return saveSlice(ctx, s.kv, storage.KeyHardware, kept)
}

// -----------------------------------------------------------------------------
// Locations
// -----------------------------------------------------------------------------

func (s *Inventory) Locations(ctx context.Context) ([]models.Location, error) {
	return loadSlice[models.Location](ctx, s.kv, storage.KeyLocations)
}

func (s *Inventory) LocationByID(ctx context.Context, id string) (*models.Location, error) {
	locs, err := s.Locations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range locs {
		if locs[i].ID == id {
			return &locs[i], nil
		}
	}
	return nil, nil
}

func (s *Inventory) CreateLocation(ctx context.Context, in CreateLocation) (*models.Location, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}
	now := s.now()
	l := models.Location{
		ID:        NewID(now),
		Name:      in.Name,
		Address:   strings.TrimSpace(in.Address),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	locs, err := s.Locations(ctx)
	if err != nil {
		return nil, err
	}
	locs = append(locs, l)
	if err := saveSlice(ctx, s.kv, storage.KeyLocations, locs); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Inventory) UpdateLocation(ctx context.Context, id string, p LocationPatch) (*models.Location, error) {
	locs, err := s.Locations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range locs {
		if locs[i].ID != id {
			continue
		}
		l := &locs[i]
		if p.Name != nil {
			if strings.TrimSpace(*p.Name) == "" {
				return nil, invalid("name", "name is required")
			}
			// Renames are safe: hardware references the id, not the name.
			l.Name = strings.TrimSpace(*p.Name)
		}
		if p.Address != nil {
			l.Address = strings.TrimSpace(*p.Address)
		}
		if p.Notes != nil {
			l.Notes = strings.TrimSpace(*p.Notes)
		}
		l.UpdatedAt = s.now()
		if err := saveSlice(ctx, s.kv, storage.KeyLocations, locs); err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, ErrNotFound
}

// DeleteLocation refuses while any hardware record references the location.
func (s *Inventory) DeleteLocation(ctx context.Context, id string) error {
	hw, err := s.Hardware(ctx)
	if err != nil {
		return err
	}
	for _, h := range hw {
		if h.LocationID == id {
			return ErrLocationInUse
		}
	}

	locs, err := s.Locations(ctx)
	if err != nil {
		return err
	}
	kept := locs[:0]
	for _, l := range locs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(locs) {
		return ErrNotFound
	}
	return saveSlice(ctx, s.kv, storage.KeyLocations, kept)
}

// -----------------------------------------------------------------------------
// Selection (the admin screen's working set of hardware ids)
// -----------------------------------------------------------------------------

func (s *Inventory) Selection(ctx context.Context) ([]string, error) {
	return loadSlice[string](ctx, s.kv, storage.KeySelectedHardware)
}

// SetSelection stores the given hardware ids, dropping ids that no longer
// resolve to a record.
func (s *Inventory) SetSelection(ctx context.Context, ids []string) ([]string, error) {
	items, err := s.Hardware(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(items))
	for _, h := range items {
		known[h.ID] = struct{}{}
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			kept = append(kept, id)
		}
	}
	if err := saveSlice(ctx, s.kv, storage.KeySelectedHardware, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Inventory) checkLocation(ctx context.Context, id string) error {
	l, err := s.LocationByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return invalid("locationId", "unknown location")
	}
	return nil
}
