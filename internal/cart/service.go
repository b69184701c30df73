package cart

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/wavewonders/internal/catalog"
	"github.com/fjod/wavewonders/internal/domain"
	"github.com/fjod/wavewonders/internal/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// storeTimeout bounds store calls that run detached from the caller's context.
const storeTimeout = 5 * time.Second

// Service owns one cart. Mutations and checkout are serialized by mu so a
// checkout always mails and clears exactly the entries it read.
type Service struct {
	store   Store
	catalog catalog.Catalog
	cartID  string

	mu  sync.Mutex
	sfg singleflight.Group // coalesces concurrent reads
}

func NewService(store Store, c catalog.Catalog, cartID string) *Service {
	return &Service{
		store:   store,
		catalog: c,
		cartID:  cartID,
	}
}

// AddProduct appends a copy of the catalog product and returns the cart.
// Unknown ids fail with domain.ErrNotFound and leave the cart untouched.
func (s *Service) AddProduct(ctx context.Context, productID int64) ([]domain.Product, error) {
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Items(ctx, s.cartID)
	if err != nil {
		return nil, errors.Wrap(err, "read cart")
	}
	if err := s.store.Append(ctx, s.cartID, p); err != nil {
		logger.FromContext(ctx).WithError(err).Error("cart append failed")
		return nil, err
	}
	s.sfg.Forget(s.cartID)

	return append(items, p), nil
}

// Cart returns the entries in insertion order.
func (s *Service) Cart(ctx context.Context) ([]domain.Product, error) {
	// shared by every coalesced caller, so detached from any one of them
	v, err, _ := s.sfg.Do(s.cartID, func() (interface{}, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
		defer cancel()
		return s.store.Items(readCtx, s.cartID)
	})
	if err != nil {
		return nil, err
	}
	items := v.([]domain.Product)
	out := make([]domain.Product, len(items))
	copy(out, items)
	return out, nil
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Checkout hands the current entries to fn while holding the cart lock and
// clears the cart only when fn succeeds. An error from fn leaves the cart as
// it was. Once fn succeeds the clear ignores ctx cancellation.
func (s *Service) Checkout(ctx context.Context, fn func(items []domain.Product) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Items(ctx, s.cartID)
	if err != nil {
		return errors.Wrap(err, "read cart")
	}
	if err := fn(items); err != nil {
		return err
	}

	clearCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	return s.clearLocked(clearCtx)
}

func (s *Service) clearLocked(ctx context.Context) error {
	if err := s.store.Clear(ctx, s.cartID); err != nil {
		logger.FromContext(ctx).WithError(err).Error("cart clear failed")
		return err
	}
	s.sfg.Forget(s.cartID)
	return nil
}
