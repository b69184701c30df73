package http

import (
	"context"
	"net/http"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/fjod/wavewonders/internal/logger"
	"github.com/pkg/errors"
)

type CartService interface {
	AddProduct(ctx context.Context, productID int64) ([]domain.Product, error)
	Cart(ctx context.Context) ([]domain.Product, error)
}

type CartHandler struct {
	carts CartService
}

func NewCartHandler(carts CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddToCartRequestDTO struct {
	ProductID *int64 `json:"productId" validate:"required"`
}

type CartResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Cart    []domain.Product `json:"cart"`
}

// POST /cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if missingFields(req) != nil {
		respondError(w, r, http.StatusBadRequest, "Missing fields: productId")
		return
	}

	items, err := h.carts.AddProduct(r.Context(), *req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "Product not found")
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("add to cart failed")
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, r, http.StatusOK, CartResponse{
		Success: true,
		Message: "Product added to cart",
		Cart:    items,
	})
}

// GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.carts.Cart(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("read cart failed")
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, r, http.StatusOK, CartResponse{Success: true, Cart: items})
}
