package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"zenweb/internal/models"
	"zenweb/internal/store"
	"zenweb/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const sessionTTL = 24 * time.Hour

type AuthService struct {
	users         *store.Users
	sessionSecret string
}

func NewAuthService(users *store.Users, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Company  string
	Phone    string
	Address  models.Address
}

// Register creates an account. Self-registration always gets the user role.
func (a *AuthService) Register(ctx context.Context, in RegisterInput) (*models.UserAccount, error) {
	if len(in.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return a.users.Create(ctx, store.CreateUser{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Company:      in.Company,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         models.RoleUser,
	})
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserAccount, error) {
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Role, sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// TokenFor issues a session token for an existing account. Used by admin
// impersonation; authorization happens at the handler.
func (a *AuthService) TokenFor(u *models.UserAccount) (string, error) {
	return utils.SignJWT(a.sessionSecret, u.ID, u.Role, sessionTTL)
}

// EnsureAdmin seeds the admin account through the normal path if it does not
// exist yet. This replaces the legacy code-level credential bypass: the admin
// is an ordinary stored record.
func (a *AuthService) EnsureAdmin(ctx context.Context, log zerolog.Logger, email, name, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	u, err := a.users.Create(ctx, store.CreateUser{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Info().Str("email", u.Email).Msg("seeded admin account")
	return nil
}
