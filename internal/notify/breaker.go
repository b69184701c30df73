package notify

import (
	"context"
	"time"

	"github.com/fjod/wavewonders/internal/logger"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings tune when the mail circuit opens.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial send.
	OpenTimeout time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}
}

// BreakerNotifier fails fast while the downstream mail server keeps failing.
// It never retries: each Notify is at most one attempt.
type BreakerNotifier struct {
	next Notifier
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerNotifier(next Notifier, s BreakerSettings) *BreakerNotifier {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.FromContext(context.Background()).
				WithField("breaker", name).
				WithField("from", from.String()).
				WithField("to", to.String()).
				Warn("mail circuit breaker state changed")
		},
	})
	return &BreakerNotifier{next: next, cb: cb}
}

func (b *BreakerNotifier) Notify(ctx context.Context, m Message) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Notify(ctx, m)
	})
	return err
}

// State reports the breaker state: closed, half-open or open.
func (b *BreakerNotifier) State() string {
	return b.cb.State().String()
}
