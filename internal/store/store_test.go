package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("Ping: %v", err)
		}
		s.Close()
	}
}

func TestSubmissionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sub := Submission{
		ID: "sub-1", Name: "Jane", Email: "jane@x.com", Message: "Hello",
		Fingerprint: "fp", Status: StatusFailed, Reason: "timeout", CreatedAt: created,
	}
	if err := s.RecordSubmission(ctx, sub); err != nil {
		t.Fatalf("RecordSubmission: %v", err)
	}

	got, err := s.Submission(ctx, "sub-1")
	if err != nil {
		t.Fatalf("Submission: %v", err)
	}
	if *got != sub {
		t.Fatalf("Submission = %+v, want %+v", *got, sub)
	}

	if _, err := s.Submission(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Submission(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSentSinceOnlyCountsDeliveredWithinWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []Submission{
		{ID: "old", Fingerprint: "a", Status: StatusSent, CreatedAt: now.Add(-time.Hour)},
		{ID: "failed", Fingerprint: "b", Status: StatusFailed, CreatedAt: now},
		{ID: "fresh", Fingerprint: "c", Status: StatusSent, CreatedAt: now},
	}
	for _, r := range records {
		r.Name, r.Email, r.Message = "n", "e@x.com", "m"
		if err := s.RecordSubmission(ctx, r); err != nil {
			t.Fatalf("RecordSubmission %s: %v", r.ID, err)
		}
	}

	since := now.Add(-10 * time.Minute)
	tests := map[string]bool{"a": false, "b": false, "c": true, "zzz": false}
	for fp, want := range tests {
		got, err := s.SentSince(ctx, fp, since)
		if err != nil {
			t.Fatalf("SentSince(%s): %v", fp, err)
		}
		if got != want {
			t.Errorf("SentSince(%s) = %v, want %v", fp, got, want)
		}
	}
}

func TestRecentSubmissionsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		err := s.RecordSubmission(ctx, Submission{
			ID: id, Name: "n", Email: "e@x.com", Message: "m", Fingerprint: id,
			Status: StatusSent, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordSubmission: %v", err)
		}
	}

	got, err := s.RecentSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentSubmissions: %v", err)
	}
	if len(got) != 2 || got[0].ID != "third" || got[1].ID != "second" {
		t.Fatalf("RecentSubmissions = %+v", got)
	}
}

func TestStatsAndPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	visits := []Visit{
		{HashedIP: "a", Path: "/", CreatedAt: now.Add(-time.Hour)},
		{HashedIP: "a", Path: "/", CreatedAt: now.Add(-2 * time.Hour)},
		{HashedIP: "b", Path: "/", CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "c", Path: "/", CreatedAt: now.AddDate(-2, 0, 0)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	err := s.RecordSubmission(ctx, Submission{
		ID: "x", Name: "n", Email: "e@x.com", Message: "m", Fingerprint: "x",
		Status: StatusFailed, Reason: "unavailable", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("RecordSubmission: %v", err)
	}

	st, err := s.Stats(ctx, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := Stats{TotalVisits: 4, UniqueVisitors: 3, VisitsToday: 2, VisitsThisWeek: 3, Submissions: 1, FailedSubmissions: 1}
	if *st != want {
		t.Fatalf("Stats = %+v, want %+v", *st, want)
	}

	removed, err := s.PruneVisits(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("PruneVisits: %v", err)
	}
	if removed != 1 {
		t.Fatalf("PruneVisits removed %d, want 1", removed)
	}
}

func TestRecentVisitsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, hash := range []string{"a", "b", "c"} {
		v := Visit{HashedIP: hash, UserAgent: "agent", Path: "/", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.RecordVisit(ctx, v); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	got, err := s.RecentVisits(ctx, 2)
	if err != nil {
		t.Fatalf("RecentVisits: %v", err)
	}
	if len(got) != 2 || got[0].HashedIP != "c" || got[1].HashedIP != "b" {
		t.Fatalf("RecentVisits = %+v", got)
	}
	if !got[0].CreatedAt.Equal(base.Add(2*time.Hour)) || got[0].UserAgent != "agent" || got[0].ID == 0 {
		t.Fatalf("visit fields not loaded: %+v", got[0])
	}
}
