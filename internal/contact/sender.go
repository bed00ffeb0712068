package contact

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrNotConfigured is returned when a sender lacks the settings it needs.
var ErrNotConfigured = errors.New("contact delivery not configured")

// ErrIncomplete is returned when a required field is blank after trimming.
var ErrIncomplete = errors.New("contact form incomplete")

// Reason categorises a failed delivery for the visitor.
type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonUnavailable Reason = "unavailable"
	ReasonRejected    Reason = "rejected"
)

// Result is the outcome of one delivery attempt.
type Result struct {
	OK     bool
	Reason Reason
	Err    error
}

func Success() Result { return Result{OK: true} }

func Failure(reason Reason, err error) Result {
	return Result{Reason: reason, Err: err}
}

// Sender delivers a contact message somewhere the site owner reads it.
type Sender interface {
	Send(ctx context.Context, f Form) Result
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, f Form) Result

func (fn SenderFunc) Send(ctx context.Context, f Form) Result { return fn(ctx, f) }

// StubSender simulates delivery: it waits Delay, logs the message and
// reports success. It is used when no mail server is configured.
type StubSender struct {
	Delay time.Duration
}

func (s StubSender) Send(ctx context.Context, f Form) Result {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Failure(ReasonTimeout, ctx.Err())
	case <-timer.C:
	}
	log.Printf("contact (not delivered, no mail server configured): name=%q email=%q message=%q", f.Name, f.Email, f.Message)
	return Success()
}
