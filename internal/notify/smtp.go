package notify

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

// SMTPConfig is the account used to submit mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPNotifier submits messages over authenticated SMTP with STARTTLS.
type SMTPNotifier struct {
	client *mail.Client
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create smtp client")
	}
	return &SMTPNotifier{client: client}, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, m Message) error {
	msg, err := buildMsg(m)
	if err != nil {
		return err
	}
	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}

func buildMsg(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, errors.Wrapf(err, "invalid sender %q", m.From)
	}
	if err := msg.To(m.To); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient %q", m.To)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	return msg, nil
}
