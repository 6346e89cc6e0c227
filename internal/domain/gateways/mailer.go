package gateways

import "context"

// Mailer sends transactional email. Implementations may be disabled
// (no sender configured), in which case Send logs and returns nil.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	Enabled() bool
}
