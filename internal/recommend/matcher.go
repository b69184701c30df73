// Package recommend filters the catalog against a customer's hair profile.
package recommend

import (
	"context"
	"strings"

	"github.com/fjod/wavewonders/internal/catalog"
	"github.com/fjod/wavewonders/internal/domain"
	"github.com/pkg/errors"
)

// Query is a customer's hair profile. Both fields take part in matching.
type Query struct {
	HairType string
	Issues   string
}

// Matches reports whether p's category contains the hair type or its name
// contains the issue, ignoring case. An empty field matches everything.
func Matches(p domain.Product, q Query) bool {
	return strings.Contains(strings.ToLower(p.Category), strings.ToLower(q.HairType)) ||
		strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Issues))
}

// Match returns the products satisfying Matches in their original order.
// The result is never nil.
func Match(products []domain.Product, q Query) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// Service answers recommendation queries against a catalog.
type Service struct {
	catalog catalog.Catalog
}

func NewService(c catalog.Catalog) *Service {
	return &Service{catalog: c}
}

func (s *Service) Recommend(ctx context.Context, q Query) ([]domain.Product, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list catalog")
	}
	return Match(products, q), nil
}
