package handlers

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/inventory-search/internal/inventory"
	"github.com/Lixing-Zhang/inventory-search/internal/middleware"
	"github.com/Lixing-Zhang/inventory-search/internal/models"
	"github.com/Lixing-Zhang/inventory-search/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageHandler renders the product search page
type PageHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewPageHandler creates a new search page handler
func NewPageHandler(service *service.ProductService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger,
	}
}

// pageData is what the manager template renders
type pageData struct {
	service.ViewState
	Categories []string
}

// ServeHTTP handles GET /
// With no parameters it lists every product; nama searches by name and
// kategori filters by category. A non-blank nama takes precedence.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := middleware.TokenFrom(ctx)
	query := r.URL.Query()

	name := strings.TrimSpace(query.Get("nama"))
	category := strings.TrimSpace(query.Get("kategori"))

	view := service.NewView(h.logger)

	var fetch service.FetchFunc
	switch {
	case name != "":
		fetch = func(ctx context.Context) ([]models.Product, error) {
			return h.service.ByName(ctx, token, name)
		}
	case category != "":
		view.SelectCategory(category)
		fetch = func(ctx context.Context) ([]models.Product, error) {
			return h.service.ByCategory(ctx, token, category)
		}
	default:
		fetch = func(ctx context.Context) ([]models.Product, error) {
			return h.service.Initial(ctx, token)
		}
	}

	status := http.StatusOK
	if err := view.Load(ctx, fetch); errors.Is(err, inventory.ErrNoToken) {
		h.logger.Warn("search page requested without token", "path", r.URL.Path)
		status = http.StatusUnauthorized
	}

	h.render(w, status, pageData{
		ViewState:  view.Snapshot(),
		Categories: service.Categories,
	})
}

func (h *PageHandler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "manager", data); err != nil {
		h.logger.Error("failed to render search page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write search page", "error", err)
	}
}
