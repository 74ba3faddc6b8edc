package models

import "time"

// Settings is a singleton admin-managed record.
type Settings struct {
	NotifyPhone string    `json:"notifyPhone,omitempty"`
	SMSEnabled  bool      `json:"smsEnabled"`
	ExcludedIPs []string  `json:"excludedIps"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s Settings) IPExcluded(ip string) bool {
	for _, v := range s.ExcludedIPs {
		if v == ip {
			return true
		}
	}
	return false
}
