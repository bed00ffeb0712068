package store

import (
	"context"
	"fmt"
	"time"
)

// Stats summarises site activity for the admin dashboard.
type Stats struct {
	TotalVisits       int64
	UniqueVisitors    int64
	VisitsToday       int64
	VisitsThisWeek    int64
	Submissions       int64
	FailedSubmissions int64
}

// Stats computes counters relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)

	st := &Stats{}
	queries := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&st.TotalVisits, `SELECT COUNT(*) FROM visits`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil},
		{&st.VisitsToday, `SELECT COUNT(*) FROM visits WHERE created_at >= ?`, []any{startOfDay.UnixNano()}},
		{&st.VisitsThisWeek, `SELECT COUNT(*) FROM visits WHERE created_at >= ?`, []any{weekAgo.UnixNano()}},
		{&st.Submissions, `SELECT COUNT(*) FROM submissions`, nil},
		{&st.FailedSubmissions, `SELECT COUNT(*) FROM submissions WHERE status = ?`, []any{string(StatusFailed)}},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	return st, nil
}
