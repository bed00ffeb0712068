package store

import (
	"context"
	"fmt"
	"time"
)

// Visit is a single anonymised page view.
type Visit struct {
	ID        int64
	HashedIP  string
	UserAgent string
	Path      string
	CreatedAt time.Time
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, path, created_at) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// PruneVisits deletes visits recorded before cutoff and returns how many
// rows were removed.
func (s *Store) PruneVisits(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	return res.RowsAffected()
}

// RecentVisits returns up to limit visits, newest first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), created_at
		FROM visits ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var (
			v     Visit
			nanos int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &nanos); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.CreatedAt = time.Unix(0, nanos).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}
