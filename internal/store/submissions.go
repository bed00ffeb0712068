package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SubmissionStatus string

const (
	StatusSent   SubmissionStatus = "sent"
	StatusFailed SubmissionStatus = "failed"
)

// Submission is one delivery attempt of the contact form.
type Submission struct {
	ID          string
	Name        string
	Email       string
	Message     string
	Fingerprint string
	Status      SubmissionStatus
	Reason      string
	CreatedAt   time.Time
}

func (s *Store) RecordSubmission(ctx context.Context, sub Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, name, email, message, fingerprint, status, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.Message, sub.Fingerprint,
		string(sub.Status), sub.Reason, sub.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("record submission %s: %w", sub.ID, err)
	}
	return nil
}

// SentSince reports whether a submission with the given fingerprint was
// delivered at or after since.
func (s *Store) SentSince(ctx context.Context, fingerprint string, since time.Time) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM submissions
		WHERE fingerprint = ? AND status = ? AND created_at >= ?`,
		fingerprint, string(StatusSent), since.UnixNano()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup fingerprint: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Submission(ctx context.Context, id string) (*Submission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, message, fingerprint, status, COALESCE(reason, ''), created_at
		FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load submission %s: %w", id, err)
	}
	return sub, nil
}

// RecentSubmissions returns up to limit submissions, newest first.
func (s *Store) RecentSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, fingerprint, status, COALESCE(reason, ''), created_at
		FROM submissions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*Submission, error) {
	var (
		sub    Submission
		status string
		nanos  int64
	)
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message,
		&sub.Fingerprint, &status, &sub.Reason, &nanos); err != nil {
		return nil, err
	}
	sub.Status = SubmissionStatus(status)
	sub.CreatedAt = time.Unix(0, nanos).UTC()
	return &sub, nil
}
