package models

import "time"

type PageView struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type AnalyticsSession struct {
	ID        string    `json:"id"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	Views     int       `json:"views"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	TotalViews     int            `json:"totalViews"`
	UniqueSessions int            `json:"uniqueSessions"`
	TopPaths       []PathCount    `json:"topPaths"`
	ViewsByDay     map[string]int `json:"viewsByDay"` // YYYY-MM-DD -> count
}
