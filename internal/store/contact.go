package store

import (
	"context"
	"strings"
	"time"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

// Contact manages the singleton public contact record.
type Contact struct {
	kv  storage.KV
	now func() time.Time
}

func NewContact(kv storage.KV) *Contact {
	return &Contact{kv: kv, now: time.Now}
}

func (s *Contact) Get(ctx context.Context) (models.ContactInfo, error) {
	info, _, err := loadDoc[models.ContactInfo](ctx, s.kv, storage.KeyContactInfo)
	return info, err
}

func (s *Contact) Put(ctx context.Context, info models.ContactInfo) (models.ContactInfo, error) {
	info.BusinessName = strings.TrimSpace(info.BusinessName)
	if info.BusinessName == "" {
		return models.ContactInfo{}, invalid("businessName", "business name is required")
	}
	info.UpdatedAt = s.now()
	if err := saveDoc(ctx, s.kv, storage.KeyContactInfo, info); err != nil {
		return models.ContactInfo{}, err
	}
	return info, nil
}
