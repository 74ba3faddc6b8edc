package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// UserAccount is the stored form; PasswordHash is persisted but must never
// reach API responses (see WithoutHash).
type UserAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Name         string    `json:"name"`
	Company      string    `json:"company,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      Address   `json:"address"`
	Role         string    `json:"role"` // user | admin
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WithoutHash returns a copy safe to serialize in API responses.
func (u UserAccount) WithoutHash() UserAccount {
	u.PasswordHash = ""
	return u
}

func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}
