package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zenweb/internal/storage"
)

func TestCreateProjectDerivesSlug(t *testing.T) {
	ctx := context.Background()
	s := NewProjects(storage.NewMemory())
	s.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), time.Second)

	p, err := s.Create(ctx, CreateProject{
		UserID: "u1", Name: "Café & Bistro Redesign!", Type: "redesign",
	})
	require.NoError(t, err)
	require.Regexp(t, `^caf-bistro-redesign-\d+$`, p.Slug)
	require.Equal(t, "draft", p.Status)

	// Rename keeps the original slug.
	name := "Totally Different"
	p2, err := s.Update(ctx, p.ID, ProjectPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, p.Slug, p2.Slug)
	require.True(t, p2.UpdatedAt.After(p.UpdatedAt))
}

func TestCreateProjectValidation(t *testing.T) {
	ctx := context.Background()
	s := NewProjects(storage.NewMemory())

	var ve *ValidationError
	_, err := s.Create(ctx, CreateProject{UserID: "u1", Name: "Site", Type: "spaceship"})
	require.ErrorAs(t, err, &ve)

	_, err = s.Create(ctx, CreateProject{Name: "Site", Type: "website"})
	require.ErrorAs(t, err, &ve)
}

func TestProjectStatusValidation(t *testing.T) {
	ctx := context.Background()
	s := NewProjects(storage.NewMemory())

	p, err := s.Create(ctx, CreateProject{UserID: "u1", Name: "Site", Type: "website"})
	require.NoError(t, err)

	good := "in_progress"
	p2, err := s.Update(ctx, p.ID, ProjectPatch{Status: &good})
	require.NoError(t, err)
	require.Equal(t, "in_progress", p2.Status)

	bad := "shipped"
	_, err = s.Update(ctx, p.ID, ProjectPatch{Status: &bad})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestProjectsByUserAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewProjects(storage.NewMemory())

	p1, err := s.Create(ctx, CreateProject{UserID: "u1", Name: "One", Type: "website"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateProject{UserID: "u2", Name: "Two", Type: "blog"})
	require.NoError(t, err)

	mine, err := s.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, s.Delete(ctx, p1.ID))
	require.ErrorIs(t, s.Delete(ctx, p1.ID), ErrNotFound)
}
