// Package mail defines the outbound notification port. Delivery itself is an
// external collaborator; the engine only hands a message to a Dispatcher and
// treats failures as non-fatal.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"workspace_backend/internal/shared/ratelimiter"
)

// Kind identifies the notification template.
type Kind string

const (
	KindVerification  Kind = "verification"
	KindPasswordReset Kind = "password_reset"
	KindInvitation    Kind = "invitation"
)

// Message is a notification to be delivered out of band.
type Message struct {
	Kind      Kind
	Recipient string
	// Token is the opaque credential embedded in the emailed link.
	Token string
	// InviterName and WorkspaceName are set for invitation messages.
	InviterName   string
	WorkspaceName string
}

// Dispatcher delivers notifications. Implementations must not be relied on
// for durability: a stored invitation outlives a bounced email.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// LogDispatcher writes the outbound link to the log instead of sending mail.
// It is the default in development and the reference Dispatcher shape.
type LogDispatcher struct {
	baseURL string
	limiter ratelimiter.RateLimiterInterface
}

// NewLogDispatcher creates a LogDispatcher. The limiter throttles dispatch
// the same way a real sender would be throttled against a provider quota.
func NewLogDispatcher(baseURL string, limiter ratelimiter.RateLimiterInterface) *LogDispatcher {
	return &LogDispatcher{baseURL: baseURL, limiter: limiter}
}

// Send logs the message and the link the recipient would receive.
func (d *LogDispatcher) Send(ctx context.Context, msg Message) error {
	if d.limiter != nil {
		d.limiter.WaitIfNeeded()
	}

	slog.Info("dispatching notification",
		"kind", msg.Kind,
		"recipient", msg.Recipient,
		"link", d.link(msg),
	)
	return nil
}

// link builds the URL the recipient would click. Tokens travel as query
// parameters, never as path segments, so proxies do not log them as routes.
func (d *LogDispatcher) link(msg Message) string {
	switch msg.Kind {
	case KindVerification:
		return fmt.Sprintf("%s/verify-email?token=%s", d.baseURL, msg.Token)
	case KindPasswordReset:
		return fmt.Sprintf("%s/reset-password?token=%s", d.baseURL, msg.Token)
	case KindInvitation:
		return fmt.Sprintf("%s/invitations/accept?token=%s", d.baseURL, msg.Token)
	default:
		return d.baseURL
	}
}
