package http

import (
	"context"
	"net/http"

	"github.com/fjod/wavewonders/internal/checkout"
	"github.com/fjod/wavewonders/internal/domain"
	"github.com/fjod/wavewonders/internal/logger"
	"github.com/pkg/errors"
)

type Checkouter interface {
	Checkout(ctx context.Context, req domain.OrderRequest) (checkout.Result, error)
}

type CheckoutHandler struct {
	processor Checkouter
}

func NewCheckoutHandler(p Checkouter) *CheckoutHandler {
	return &CheckoutHandler{processor: p}
}

// POST /checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.processor.Checkout(r.Context(), req)
	log := logger.FromContext(r.Context()).WithField("checkout_state", res.State.String())
	switch {
	case err == nil:
		respondJSON(w, r, http.StatusOK, MessageResponse{Success: true, Message: "Order placed successfully"})
	case errors.Is(err, domain.ErrValidation):
		respondError(w, r, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, domain.ErrMailDelivery):
		respondError(w, r, http.StatusInternalServerError, "Email sending failed")
	default:
		log.WithError(err).Error("checkout failed")
		respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}
