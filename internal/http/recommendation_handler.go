package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/fjod/wavewonders/internal/logger"
	"github.com/fjod/wavewonders/internal/recommend"
)

type Recommender interface {
	Recommend(ctx context.Context, q recommend.Query) ([]domain.Product, error)
}

type RecommendationHandler struct {
	recommender Recommender
}

func NewRecommendationHandler(r Recommender) *RecommendationHandler {
	return &RecommendationHandler{recommender: r}
}

// RecommendationRequestDTO uses pointers so an absent field is told apart
// from an empty one. Empty strings match every product.
type RecommendationRequestDTO struct {
	HairType *string `json:"hairType" validate:"required"`
	Issues   *string `json:"issues" validate:"required"`
}

type RecommendationsResponse struct {
	Success         bool             `json:"success"`
	Recommendations []domain.Product `json:"recommendations"`
}

// POST /recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if missing := missingFields(req); len(missing) > 0 {
		respondError(w, r, http.StatusBadRequest, "Missing fields: "+strings.Join(missing, ", "))
		return
	}

	products, err := h.recommender.Recommend(r.Context(), recommend.Query{
		HairType: *req.HairType,
		Issues:   *req.Issues,
	})
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("recommendation failed")
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, r, http.StatusOK, RecommendationsResponse{Success: true, Recommendations: products})
}
