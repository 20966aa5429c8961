package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/inventory-search/internal/inventory"
	"github.com/Lixing-Zhang/inventory-search/internal/middleware"
	"github.com/Lixing-Zhang/inventory-search/internal/models"
	"github.com/Lixing-Zhang/inventory-search/internal/service"
)

// ProductHandler serves the product list as JSON for scripted clients
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/product
// Query parameters mirror the upstream API:
// - nama: search by name (must not be blank when present)
// - kategori: filter by category
// Responses:
// - 200: {"barangModel": [...]}
// - 400: blank search term
// - 401: no token, or token rejected upstream
// - 502: upstream failure
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.TokenFrom(ctx)
	query := r.URL.Query()

	var (
		products []models.Product
		err      error
	)

	switch {
	case query.Has("nama"):
		products, err = h.service.ByName(ctx, token, query.Get("nama"))
	case strings.TrimSpace(query.Get("kategori")) != "":
		products, err = h.service.ByCategory(ctx, token, strings.TrimSpace(query.Get("kategori")))
	default:
		products, err = h.service.Initial(ctx, token)
	}

	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ProductList{Products: products}, h.logger)
}

func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	var statusErr *inventory.StatusError

	switch {
	case errors.Is(err, service.ErrEmptySearch):
		writeError(w, http.StatusBadRequest, "Search term is required", h.logger)
	case errors.Is(err, inventory.ErrNoToken):
		writeError(w, http.StatusUnauthorized, service.NoTokenMessage, h.logger)
	case errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden):
		h.logger.Warn("token rejected by inventory api", inventory.ErrorAttrs(err)...)
		writeError(w, http.StatusUnauthorized, err.Error(), h.logger)
	default:
		h.logger.Error("failed to list products", inventory.ErrorAttrs(err)...)
		writeError(w, http.StatusBadGateway, err.Error(), h.logger)
	}
}
