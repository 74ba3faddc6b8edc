package store

import (
	"context"
	"strings"
	"time"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

type Users struct {
	kv  storage.KV
	now func() time.Time
}

func NewUsers(kv storage.KV) *Users {
	return &Users{kv: kv, now: time.Now}
}

type CreateUser struct {
	Email        string
	Name         string
	PasswordHash string
	Company      string
	Phone        string
	Address      models.Address
	Role         string
}

type UserPatch struct {
	Name    *string
	Company *string
	Phone   *string
	Address *models.Address
}

func (s *Users) All(ctx context.Context) ([]models.UserAccount, error) {
	return loadSlice[models.UserAccount](ctx, s.kv, storage.KeyUsers)
}

func (s *Users) GetByID(ctx context.Context, id string) (*models.UserAccount, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	email = normalizeEmail(email)
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if normalizeEmail(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create appends a new account. Email uniqueness is a linear check against
// the current collection.
func (s *Users) Create(ctx context.Context, in CreateUser) (*models.UserAccount, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, invalid("email", "a valid email is required")
	}
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}
	if in.PasswordHash == "" {
		return nil, invalid("password", "password is required")
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !models.ValidRole(in.Role) {
		return nil, invalid("role", "unknown role")
	}

	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if normalizeEmail(users[i].Email) == in.Email {
			return nil, ErrEmailTaken
		}
	}

	now := s.now()
	u := models.UserAccount{
		ID:           NewID(now),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		Company:      strings.TrimSpace(in.Company),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      in.Address,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	users = append(users, u)
	if err := saveSlice(ctx, s.kv, storage.KeyUsers, users); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) Update(ctx context.Context, id string, p UserPatch) (*models.UserAccount, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if p.Name != nil {
			if strings.TrimSpace(*p.Name) == "" {
				return nil, invalid("name", "name is required")
			}
			users[i].Name = strings.TrimSpace(*p.Name)
		}
		if p.Company != nil {
			users[i].Company = strings.TrimSpace(*p.Company)
		}
		if p.Phone != nil {
			users[i].Phone = strings.TrimSpace(*p.Phone)
		}
		if p.Address != nil {
			users[i].Address = *p.Address
		}
		users[i].UpdatedAt = s.now()
		if err := saveSlice(ctx, s.kv, storage.KeyUsers, users); err != nil {
			return nil, err
		}
		return &users[i], nil
	}
	return nil, ErrNotFound
}

func (s *Users) SetRole(ctx context.Context, id, role string) (*models.UserAccount, error) {
	if !models.ValidRole(role) {
		return nil, invalid("role", "unknown role")
	}
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Role = role
			users[i].UpdatedAt = s.now()
			if err := saveSlice(ctx, s.kv, storage.KeyUsers, users); err != nil {
				return nil, err
			}
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Users) SetPasswordHash(ctx context.Context, id, hash string) error {
	users, err := s.All(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].PasswordHash = hash
			users[i].UpdatedAt = s.now()
			return saveSlice(ctx, s.kv, storage.KeyUsers, users)
		}
	}
	return ErrNotFound
}

// Delete removes the account; failure is detected by comparing lengths.
func (s *Users) Delete(ctx context.Context, id string) error {
	users, err := s.All(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return ErrNotFound
	}
	return saveSlice(ctx, s.kv, storage.KeyUsers, kept)
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
