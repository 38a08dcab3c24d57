package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	dom "Tracker/internal/domain"
)

// Per-channel delivery outcomes.
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Message is a single notification addressed to one recipient.
// Subject is ignored by transports that have no such concept (SMS).
type Message struct {
	To      string
	Subject string
	Body    string
}

// Channel delivers a message over one transport.
type Channel interface {
	Send(ctx context.Context, msg Message) error
}

// Result reports the outcome of both delivery attempts for one notification.
type Result struct {
	SMS   string `json:"sms"`
	Email string `json:"email"`
}

// ErrNoEmailChannel is returned when an email must be sent but no email
// channel is configured.
var ErrNoEmailChannel = errors.New("no email channel configured")

// Dispatcher sends the tracking-number notification over SMS and email.
// Both channels are best effort: a failure is logged and visible in the
// Result but never propagated to the caller.
type Dispatcher struct {
	sms     Channel
	email   Channel
	timeout time.Duration
}

// NewDispatcher returns a Dispatcher. A nil channel is reported as skipped.
// Each delivery attempt is bounded by timeout.
func NewDispatcher(sms, email Channel, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{sms: sms, email: email, timeout: timeout}
}

// Notify tells the complainant their issue was logged. Channels run one after
// the other; one channel failing does not stop the other.
func (d *Dispatcher) Notify(ctx context.Context, trackingNumber int64, to dom.Complainant) Result {
	body := fmt.Sprintf("Your issue has been logged. Your tracking number is %d.", trackingNumber)
	return Result{
		SMS: d.attempt(ctx, d.sms, "sms", Message{
			To:   to.PhoneNumber,
			Body: body,
		}),
		Email: d.attempt(ctx, d.email, "email", Message{
			To:      to.Email,
			Subject: "Issue Logged - Tracking Number",
			Body:    body,
		}),
	}
}

// SendPasswordReset emails the reset link. Unlike Notify, this failure matters
// to the caller: without the link the reset flow cannot complete.
func (d *Dispatcher) SendPasswordReset(ctx context.Context, to, link string) error {
	if d.email == nil {
		return ErrNoEmailChannel
	}
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.email.Send(sendCtx, Message{
		To:      to,
		Subject: "Password Reset",
		Body:    "Please use the following link to reset your password: " + link,
	})
}

func (d *Dispatcher) attempt(ctx context.Context, ch Channel, name string, msg Message) string {
	if ch == nil || msg.To == "" {
		return StatusSkipped
	}
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if err := ch.Send(sendCtx, msg); err != nil {
		log.Printf("notify: %s delivery failed: %v", name, err)
		return StatusFailed
	}
	return StatusSent
}
