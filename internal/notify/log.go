package notify

import (
	"context"

	"github.com/fjod/wavewonders/internal/logger"
)

// LogNotifier writes messages to the log instead of sending them. It is meant
// for local runs without an SMTP account.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, m Message) error {
	logger.FromContext(ctx).
		WithField("to", m.To).
		WithField("subject", m.Subject).
		WithField("body_length", len(m.HTML)).
		Info("email not sent, log mail backend active")
	return nil
}
