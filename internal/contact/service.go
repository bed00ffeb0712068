package contact

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/pm-portfolio/internal/store"
)

// DedupeWindow is how long an identical delivered message is not sent again.
const DedupeWindow = 10 * time.Minute

// Recorder persists delivery attempts and answers duplicate lookups.
type Recorder interface {
	RecordSubmission(ctx context.Context, sub store.Submission) error
	SentSince(ctx context.Context, fingerprint string, since time.Time) (bool, error)
}

// Service delivers submissions through a Sender with a timeout, guards
// against resending identical messages, and records every attempt.
type Service struct {
	sender   Sender
	recorder Recorder
	timeout  time.Duration
	now      func() time.Time
}

func NewService(sender Sender, recorder Recorder, timeout time.Duration) *Service {
	return &Service{sender: sender, recorder: recorder, timeout: timeout, now: time.Now}
}

// Submit delivers f. Recorder failures are logged and never change the
// result seen by the visitor.
func (s *Service) Submit(ctx context.Context, f Form) Result {
	f = f.Normalize()
	if !f.Complete() {
		return Failure(ReasonRejected, ErrIncomplete)
	}
	fp := f.Fingerprint()

	if s.recorder != nil {
		dup, err := s.recorder.SentSince(ctx, fp, s.now().Add(-DedupeWindow))
		if err != nil {
			log.Printf("contact: duplicate lookup failed: %v", err)
		} else if dup {
			log.Printf("contact: duplicate submission from %s ignored", f.Email)
			return Success()
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res := s.sender.Send(sendCtx, f)

	if s.recorder != nil {
		sub := store.Submission{
			ID:          uuid.NewString(),
			Name:        f.Name,
			Email:       f.Email,
			Message:     f.Message,
			Fingerprint: fp,
			Status:      store.StatusSent,
			CreatedAt:   s.now(),
		}
		if !res.OK {
			sub.Status = store.StatusFailed
			sub.Reason = string(res.Reason)
		}
		// The request context may already be done after a timeout.
		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.recorder.RecordSubmission(recCtx, sub); err != nil {
			log.Printf("contact: %v", err)
		}
	}
	return res
}
