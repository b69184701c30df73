// Package checkout turns the shared cart into an emailed order.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/fjod/wavewonders/internal/logger"
	"github.com/fjod/wavewonders/internal/notify"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Subject is the fixed subject line of every order email.
const Subject = "New Order - Wave Wonders"

// CartCheckouter runs fn over the current cart and clears it when fn succeeds.
type CartCheckouter interface {
	Checkout(ctx context.Context, fn func(items []domain.Product) error) error
}

// Config holds the mail envelope and the bound on one send.
type Config struct {
	From        string
	To          string
	MailTimeout time.Duration
}

// Result describes a finished checkout.
type Result struct {
	State State
	Items int
	Total decimal.Decimal
}

// advance moves to next when the transition is legal. Terminal states stick.
func (r *Result) advance(next State) {
	if r.State.CanTransitionTo(next) {
		r.State = next
	}
}

type Processor struct {
	carts     CartCheckouter
	notifier  notify.Notifier
	renderer  *Renderer
	publisher Publisher
	validate  *validator.Validate
	cfg       Config
	now       func() time.Time
}

// NewProcessor wires a processor. publisher may be nil, in which case no
// order events are emitted.
func NewProcessor(carts CartCheckouter, n notify.Notifier, r *Renderer, pub Publisher, cfg Config) *Processor {
	return &Processor{
		carts:     carts,
		notifier:  n,
		renderer:  r,
		publisher: pub,
		validate:  domain.NewValidator(),
		cfg:       cfg,
		now:       time.Now,
	}
}

// Checkout validates req, mails the cart contents and clears the cart.
//
// Missing fields fail with domain.ErrValidation before the cart is read. A
// failed send fails with domain.ErrMailDelivery and keeps the cart for a
// retry. An empty cart is checked out with a zero total.
func (p *Processor) Checkout(ctx context.Context, req domain.OrderRequest) (Result, error) {
	log := logger.FromContext(ctx)
	res := Result{State: StateValidating}

	if missing := p.missingFields(req); len(missing) > 0 {
		res.advance(StateRejected)
		log.WithField("missing", missing).Info("checkout rejected")
		return res, errors.Wrapf(domain.ErrValidation, "missing fields: %s", strings.Join(missing, ", "))
	}

	var summary domain.OrderSummary
	err := p.carts.Checkout(ctx, func(items []domain.Product) error {
		res.advance(StateComposing)
		summary = domain.OrderSummary{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
			Items:   items,
			Total:   domain.Total(items),
		}
		res.Items = len(items)
		res.Total = summary.Total
		if len(items) == 0 {
			log.Warn("checking out an empty cart")
		}

		body, err := p.renderer.Render(summary)
		if err != nil {
			res.advance(StateFailed)
			return err
		}

		res.advance(StateSending)
		sendCtx, cancel := context.WithTimeout(ctx, p.cfg.MailTimeout)
		defer cancel()

		err = p.notifier.Notify(sendCtx, notify.Message{
			From:    p.cfg.From,
			To:      p.cfg.To,
			Subject: Subject,
			HTML:    body,
		})
		if err != nil {
			res.advance(StateFailed)
			log.WithError(err).Error("order email failed, cart kept")
			return errors.Wrapf(domain.ErrMailDelivery, "%v", err)
		}
		return nil
	})
	if err != nil {
		res.advance(StateFailed)
		return res, err
	}

	res.advance(StateSucceeded)
	log.WithField("items", res.Items).WithField("total", res.Total.String()).Info("order placed")
	p.publish(ctx, summary)
	return res, nil
}

func (p *Processor) missingFields(req domain.OrderRequest) []string {
	err := p.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing
}

// publish is best effort: the order is already mailed and the cart cleared.
func (p *Processor) publish(ctx context.Context, s domain.OrderSummary) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.PublishOrderPlaced(ctx, newOrderPlacedEvent(s, p.now())); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("order event not published")
	}
}
