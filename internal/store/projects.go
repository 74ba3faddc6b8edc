package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

type Projects struct {
	kv  storage.KV
	now func() time.Time
}

func NewProjects(kv storage.KV) *Projects {
	return &Projects{kv: kv, now: time.Now}
}

type CreateProject struct {
	UserID      string
	Name        string
	Type        string
	Priority    string
	Budget      string
	Timeline    string
	Description string
}

type ProjectPatch struct {
	Name        *string
	Status      *string
	Priority    *string
	Budget      *string
	Timeline    *string
	Description *string
}

func (s *Projects) All(ctx context.Context) ([]models.Project, error) {
	return loadSlice[models.Project](ctx, s.kv, storage.KeyProjects)
}

func (s *Projects) GetByID(ctx context.Context, id string) (*models.Project, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, nil
}

func (s *Projects) ByUser(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Projects) Create(ctx context.Context, in CreateProject) (*models.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.UserID == "" {
		return nil, invalid("userId", "owner is required")
	}
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}
	if !models.ValidProjectType(in.Type) {
		return nil, invalid("type", "unknown project type")
	}

	now := s.now()
	p := models.Project{
		ID:     NewID(now),
		UserID: in.UserID,
		Name:   in.Name,
		// The unix suffix keeps slugs unique without a global scan.
		Slug:        slugify(in.Name) + "-" + strconv.FormatInt(now.Unix(), 10),
		Type:        in.Type,
		Status:      "draft",
		Priority:    strings.TrimSpace(in.Priority),
		Budget:      strings.TrimSpace(in.Budget),
		Timeline:    strings.TrimSpace(in.Timeline),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	projects, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	projects = append(projects, p)
	if err := saveSlice(ctx, s.kv, storage.KeyProjects, projects); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update merges the patch; the slug is derived once at creation and never
// regenerated, even on rename.
func (s *Projects) Update(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		p := &projects[i]
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return nil, invalid("name", "name is required")
			}
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Status != nil {
			if !models.ValidProjectStatus(*patch.Status) {
				return nil, invalid("status", "unknown status")
			}
			p.Status = *patch.Status
		}
		if patch.Priority != nil {
			p.Priority = strings.TrimSpace(*patch.Priority)
		}
		if patch.Budget != nil {
			p.Budget = strings.TrimSpace(*patch.Budget)
		}
		if patch.Timeline != nil {
			p.Timeline = strings.TrimSpace(*patch.Timeline)
		}
		if patch.Description != nil {
			p.Description = strings.TrimSpace(*patch.Description)
		}
		p.UpdatedAt = s.now()
		if err := saveSlice(ctx, s.kv, storage.KeyProjects, projects); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, ErrNotFound
}

func (s *Projects) Delete(ctx context.Context, id string) error {
	projects, err := s.All(ctx)
	if err != nil {
		return err
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return ErrNotFound
	}
	return saveSlice(ctx, s.kv, storage.KeyProjects, kept)
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
