// Package catalog holds the read-only set of sellable products.
package catalog

import (
	"context"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/pkg/errors"
)

// Catalog is read by the recommendation matcher and the cart.
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
}

// SeedProducts is the hair-care range the shop launches with.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Moisturizing Shampoo", Category: "Dry Hair", Price: 10},
		{ID: 2, Name: "Curl Enhancer", Category: "Curly Hair", Price: 15},
		{ID: 3, Name: "Anti-Frizz Serum", Category: "Frizzy Hair", Price: 12},
	}
}

// Static is an immutable in-memory catalog.
type Static struct {
	products []domain.Product
	byID     map[int64]int
}

// NewStatic copies products into a catalog. Ids must be unique and prices
// non-negative.
func NewStatic(products []domain.Product) (*Static, error) {
	s := &Static{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		if _, dup := s.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		if p.Price < 0 {
			return nil, errors.Errorf("product %d has negative price", p.ID)
		}
		s.byID[p.ID] = i
	}
	return s, nil
}

// List returns a copy of all products in catalog order.
func (s *Static) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *Static) Get(_ context.Context, id int64) (domain.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, errors.Wrapf(domain.ErrNotFound, "product %d", id)
	}
	return s.products[i], nil
}

// Lister is any source the catalog can be snapshotted from.
type Lister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Load reads every product from src once and freezes it into a Static catalog.
func Load(ctx context.Context, src Lister) (*Static, error) {
	products, err := src.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	return NewStatic(products)
}
