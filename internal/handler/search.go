package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/ranking"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/search"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/store"
)

type SearchHandler struct {
	service *search.Service
}

func NewSearchHandler(service *search.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// Preferences are caller scoring overrides, accepted as supplied.
type Preferences struct {
	RatePerPoint float64          `json:"rate_per_point,omitempty"`
	Weights      *ranking.Weights `json:"weights,omitempty"`
}

type compareRequest struct {
	Offers []models.Offer `json:"offers"`
	Prefs  *Preferences   `json:"prefs,omitempty"`
}

// Search handles POST /api/v1/flights/search. The body is a SearchQuery;
// force_live=true bypasses the cache and limit caps the result count.
func (h *SearchHandler) Search(c echo.Context) error {
	var q models.SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	opts := search.Options{
		BypassCache: c.QueryParam("force_live") == "true",
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be a positive integer",
				Code:    http.StatusBadRequest,
			})
		}
		opts.Limit = limit
	}

	result, err := h.service.Search(c.Request().Context(), q, opts)
	if err != nil {
		return searchError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Compare handles POST /api/v1/flights/compare: re-rank a caller-supplied
// offer set against custom preferences, no fetching.
func (h *SearchHandler) Compare(c echo.Context) error {
	var req compareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if len(req.Offers) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "offers must not be empty",
			Code:    http.StatusBadRequest,
		})
	}

	opts := search.Options{}
	if req.Prefs != nil {
		opts.Weights = req.Prefs.Weights
		opts.RatePerPoint = req.Prefs.RatePerPoint
	}

	return c.JSON(http.StatusOK, h.service.Compare(req.Offers, opts))
}

// GetOffer handles GET /api/v1/offers/:hash.
func (h *SearchHandler) GetOffer(c echo.Context) error {
	offer, err := h.service.GetOffer(c.Request().Context(), c.Param("hash"))
	if err != nil {
		if errors.Is(err, store.ErrOfferNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "offer_not_found",
				Message: "Offer not found or expired",
				Code:    http.StatusNotFound,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve offer",
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, offer)
}

func searchError(c echo.Context, err error) error {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: vErr.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, search.ErrNoOffersFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no_offers_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	default:
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search flights: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
