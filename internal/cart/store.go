// Package cart keeps the ordered list of products pending purchase.
package cart

import (
	"context"

	"github.com/fjod/wavewonders/internal/domain"
)

// Store persists cart entries keyed by cart id. Implementations must keep
// insertion order and return copies the caller may modify.
type Store interface {
	// Items returns the entries of a cart, empty (never nil) for unknown carts.
	Items(ctx context.Context, cartID string) ([]domain.Product, error)

	// Append adds a copy of p to the end of the cart.
	Append(ctx context.Context, cartID string, p domain.Product) error

	// Clear removes every entry. Clearing an empty cart is not an error.
	Clear(ctx context.Context, cartID string) error
}
