// Package notification delivers OTP messages to an email address or phone
// number. Delivery may fail; callers log failures and move on.
package notification

import (
	"context"
	"time"
)

type Sender interface {
	Send(ctx context.Context, destination, subject, body string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, destination, subject, body string) error

func (f SenderFunc) Send(ctx context.Context, destination, subject, body string) error {
	return f(ctx, destination, subject, body)
}

type timeoutSender struct {
	next    Sender
	timeout time.Duration
}

// WithTimeout bounds every Send to d. When the deadline passes the caller
// gets context.DeadlineExceeded while the underlying send finishes in the
// background.
func WithTimeout(next Sender, d time.Duration) Sender {
	if d <= 0 {
		return next
	}
	return &timeoutSender{next: next, timeout: d}
}

func (s *timeoutSender) Send(ctx context.Context, destination, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.next.Send(ctx, destination, subject, body)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
