package models

import "time"

var HardwareStatuses = []string{"active", "in_repair", "retired", "spare"}

type Hardware struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"` // desktop, laptop, printer, router, ...
	SerialNumber string    `json:"serialNumber,omitempty"`
	LocationID   string    `json:"locationId,omitempty"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidHardwareStatus(s string) bool {
	for _, v := range HardwareStatuses {
		if v == s {
			return true
		}
	}
	return false
}
