package models

import "time"

var ProjectTypes = []string{
	"website", "ecommerce", "web_app", "mobile_app", "landing_page",
	"redesign", "branding", "seo", "maintenance", "hosting",
	"blog", "portfolio", "booking", "crm_integration", "other",
}

var ProjectStatuses = []string{
	"draft", "pending", "approved", "in_progress", "review",
	"completed", "cancelled", "on_hold",
}

type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // derived once, timestamp suffix keeps it unique
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Budget      string    `json:"budget,omitempty"`
	Timeline    string    `json:"timeline,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidProjectType(t string) bool {
	for _, v := range ProjectTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}
