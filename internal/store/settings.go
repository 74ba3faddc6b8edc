package store

import (
	"context"
	"net"
	"strings"
	"time"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

// Settings manages the singleton admin settings record.
type Settings struct {
	kv  storage.KV
	now func() time.Time
}

func NewSettings(kv storage.KV) *Settings {
	return &Settings{kv: kv, now: time.Now}
}

func (s *Settings) Get(ctx context.Context) (models.Settings, error) {
	doc, ok, err := loadDoc[models.Settings](ctx, s.kv, storage.KeySettings)
	if err != nil {
		return models.Settings{}, err
	}
	if !ok {
		doc = models.Settings{ExcludedIPs: []string{}}
	}
	if doc.ExcludedIPs == nil {
		doc.ExcludedIPs = []string{}
	}
	return doc, nil
}

func (s *Settings) Put(ctx context.Context, doc models.Settings) (models.Settings, error) {
	if doc.ExcludedIPs == nil {
		doc.ExcludedIPs = []string{}
	}
	for i, ip := range doc.ExcludedIPs {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) == nil {
			return models.Settings{}, invalid("excludedIps", "invalid IP address: "+ip)
		}
		doc.ExcludedIPs[i] = ip
	}
	doc.UpdatedAt = s.now()
	if err := saveDoc(ctx, s.kv, storage.KeySettings, doc); err != nil {
		return models.Settings{}, err
	}
	return doc, nil
}

func (s *Settings) SetExcludedIPs(ctx context.Context, ips []string) (models.Settings, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	doc.ExcludedIPs = ips
	return s.Put(ctx, doc)
}
