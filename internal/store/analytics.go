package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"zenweb/internal/models"
	"zenweb/internal/storage"
)

type Analytics struct {
	kv  storage.KV
	now func() time.Time
}

func NewAnalytics(kv storage.KV) *Analytics {
	return &Analytics{kv: kv, now: time.Now}
}

type PageViewInput struct {
	SessionID string // empty or unknown starts a new session
	Path      string
	Referrer  string
	IP        string
	UserAgent string
}

// Record appends a pageview and updates (or starts) its session. Returns the
// stored view; its SessionID is what the client should echo on the next hit.
func (s *Analytics) Record(ctx context.Context, in PageViewInput) (*models.PageView, error) {
	in.Path = strings.TrimSpace(in.Path)
	if in.Path == "" {
		return nil, invalid("path", "path is required")
	}

	now := s.now()
	sessions, err := loadSlice[models.AnalyticsSession](ctx, s.kv, storage.KeySessions)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range sessions {
		if sessions[i].ID == in.SessionID {
			idx = i
			break
		}
	}
	if in.SessionID == "" || idx < 0 {
		in.SessionID = uuid.NewString()
		sessions = append(sessions, models.AnalyticsSession{
			ID: in.SessionID, FirstSeen: now, LastSeen: now, Views: 1,
		})
	} else {
		sessions[idx].LastSeen = now
		sessions[idx].Views++
	}
	if err := saveSlice(ctx, s.kv, storage.KeySessions, sessions); err != nil {
		return nil, err
	}

	view := models.PageView{
		ID:        uuid.NewString(),
		SessionID: in.SessionID,
		Path:      in.Path,
		Referrer:  strings.TrimSpace(in.Referrer),
		IP:        in.IP,
		UserAgent: in.UserAgent,
		CreatedAt: now,
	}
	views, err := loadSlice[models.PageView](ctx, s.kv, storage.KeyPageViews)
	if err != nil {
		return nil, err
	}
	views = append(views, view)
	if err := saveSlice(ctx, s.kv, storage.KeyPageViews, views); err != nil {
		return nil, err
	}
	return &view, nil
}

// Summary aggregates the last `days` days of pageviews.
func (s *Analytics) Summary(ctx context.Context, days int) (*models.AnalyticsSummary, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := s.now().AddDate(0, 0, -days)

	views, err := loadSlice[models.PageView](ctx, s.kv, storage.KeyPageViews)
	if err != nil {
		return nil, err
	}

	sum := &models.AnalyticsSummary{ViewsByDay: map[string]int{}}
	sessions := map[string]struct{}{}
	paths := map[string]int{}
	for _, v := range views {
		if v.CreatedAt.Before(cutoff) {
			continue
		}
		sum.TotalViews++
		sessions[v.SessionID] = struct{}{}
		paths[v.Path]++
		sum.ViewsByDay[v.CreatedAt.Format("2006-01-02")]++
	}
	sum.UniqueSessions = len(sessions)

	sum.TopPaths = make([]models.PathCount, 0, len(paths))
	for p, n := range paths {
		sum.TopPaths = append(sum.TopPaths, models.PathCount{Path: p, Count: n})
	}
	sort.Slice(sum.TopPaths, func(i, j int) bool {
		if sum.TopPaths[i].Count != sum.TopPaths[j].Count {
			return sum.TopPaths[i].Count > sum.TopPaths[j].Count
		}
		return sum.TopPaths[i].Path < sum.TopPaths[j].Path
	})
	if len(sum.TopPaths) > 10 {
		sum.TopPaths = sum.TopPaths[:10]
	}
	return sum, nil
}
