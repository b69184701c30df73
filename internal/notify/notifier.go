// Package notify delivers order messages to the shop owner.
package notify

import "context"

// Message is one outgoing HTML email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Notifier sends a message or reports why it could not.
type Notifier interface {
	Notify(ctx context.Context, m Message) error
}
