package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"zenweb/internal/storage"
)

func TestDeleteLocationGuard(t *testing.T) {
	ctx := context.Background()
	s := NewInventory(storage.NewMemory())

	office, err := s.CreateLocation(ctx, CreateLocation{Name: "Head Office"})
	require.NoError(t, err)
	warehouse, err := s.CreateLocation(ctx, CreateLocation{Name: "Warehouse"})
	require.NoError(t, err)

	hw, err := s.CreateHardware(ctx, CreateHardware{Name: "Front desk PC", LocationID: office.ID})
	require.NoError(t, err)

	// Referenced location cannot be deleted.
	require.ErrorIs(t, s.DeleteLocation(ctx, office.ID), ErrLocationInUse)

	// Unreferenced location deletes and shrinks the collection by one.
	require.NoError(t, s.DeleteLocation(ctx, warehouse.ID))
	locs, err := s.Locations(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 1)

	// Once the hardware is gone, the guard releases.
	require.NoError(t, s.DeleteHardware(ctx, hw.ID))
	require.NoError(t, s.DeleteLocation(ctx, office.ID))
}

func TestLocationRenameKeepsReferences(t *testing.T) {
	ctx := context.Background()
	s := NewInventory(storage.NewMemory())

	loc, err := s.CreateLocation(ctx, CreateLocation{Name: "Office"})
	require.NoError(t, err)
	_, err = s.CreateHardware(ctx, CreateHardware{Name: "Router", LocationID: loc.ID})
	require.NoError(t, err)

	name := "Office (2nd floor)"
	_, err = s.UpdateLocation(ctx, loc.ID, LocationPatch{Name: &name})
	require.NoError(t, err)

	// Reference is by id, so the guard still holds after a rename.
	require.ErrorIs(t, s.DeleteLocation(ctx, loc.ID), ErrLocationInUse)
}

func TestHardwareRejectsUnknownLocation(t *testing.T) {
	ctx := context.Background()
	s := NewInventory(storage.NewMemory())

	var ve *ValidationError
	_, err := s.CreateHardware(ctx, CreateHardware{Name: "PC", LocationID: "nope"})
	require.ErrorAs(t, err, &ve)
}

func TestSelectionDropsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	s := NewInventory(storage.NewMemory())

	hw, err := s.CreateHardware(ctx, CreateHardware{Name: "PC"})
	require.NoError(t, err)

	kept, err := s.SetSelection(ctx, []string{hw.ID, "ghost"})
	require.NoError(t, err)
	require.Equal(t, []string{hw.ID}, kept)

	got, err := s.Selection(ctx)
	require.NoError(t, err)
	require.Equal(t, kept, got)
}
