package storage

import "context"

// KV is the storage abstraction the record stores are written against.
// Each collection is a single JSON document stored under a well-known key;
// Get returns nil (no error) when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Collection keys. The pcr_/zenweb_ prefixes are kept bit-exact from the
// legacy portal so exported data stays readable across versions.
const (
	KeyUsers            = "pcr_users"
	KeyTickets          = "zenweb_tickets"
	KeyProjects         = "zenweb_projects"
	KeyContactInfo      = "contactInfo"
	KeyHardware         = "pcr_hardware"
	KeyLocations        = "pcr_locations"
	KeySelectedHardware = "pcr_selected_hardware"
	KeySessions         = "analytics_session"
	KeyPageViews        = "analytics_pageviews"
	KeySettings         = "zenweb_settings"
)
