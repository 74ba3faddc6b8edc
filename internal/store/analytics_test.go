package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zenweb/internal/storage"
)

func TestRecordTracksSessions(t *testing.T) {
	ctx := context.Background()
	s := NewAnalytics(storage.NewMemory())

	first, err := s.Record(ctx, PageViewInput{Path: "/"})
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)

	// Echoing the session id keeps the session alive.
	second, err := s.Record(ctx, PageViewInput{SessionID: first.SessionID, Path: "/services"})
	require.NoError(t, err)
	require.Equal(t, first.SessionID, second.SessionID)

	// An unknown session id starts a fresh session.
	third, err := s.Record(ctx, PageViewInput{SessionID: "stale", Path: "/"})
	require.NoError(t, err)
	require.NotEqual(t, "stale", third.SessionID)
	require.NotEqual(t, first.SessionID, third.SessionID)
}

func TestSummaryAggregates(t *testing.T) {
	ctx := context.Background()
	s := NewAnalytics(storage.NewMemory())
	s.now = stepClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), time.Minute)

	v, err := s.Record(ctx, PageViewInput{Path: "/"})
	require.NoError(t, err)
	_, err = s.Record(ctx, PageViewInput{SessionID: v.SessionID, Path: "/"})
	require.NoError(t, err)
	_, err = s.Record(ctx, PageViewInput{Path: "/pricing"})
	require.NoError(t, err)

	sum, err := s.Summary(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, 3, sum.TotalViews)
	require.Equal(t, 2, sum.UniqueSessions)
	require.Equal(t, "/", sum.TopPaths[0].Path)
	require.Equal(t, 2, sum.TopPaths[0].Count)
	require.Equal(t, 3, sum.ViewsByDay["2025-06-01"])
}

func TestRecordRequiresPath(t *testing.T) {
	ctx := context.Background()
	s := NewAnalytics(storage.NewMemory())

	var ve *ValidationError
	_, err := s.Record(ctx, PageViewInput{})
	require.ErrorAs(t, err, &ve)
}
