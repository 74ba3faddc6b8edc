package models

import "time"

// ContactInfo is a singleton record: one business, one set of public details.
type ContactInfo struct {
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Hours        string    `json:"hours,omitempty"`
	Facebook     string    `json:"facebook,omitempty"`
	Instagram    string    `json:"instagram,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
