package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/inventory-search/internal/inventory"
	"github.com/Lixing-Zhang/inventory-search/internal/models"
)

// NoTokenMessage is shown when the request carries no credentials
const NoTokenMessage = "No token found"

// FetchFunc loads a product list
type FetchFunc func(ctx context.Context) ([]models.Product, error)

// ViewState is a point-in-time copy of a View
type ViewState struct {
	Products []models.Product
	Category string
	Loading  bool
	Error    string
}

// View holds the state of one search page: the displayed products,
// the selected category and the loading and error flags.
//
// Loads are not cancelled when a newer one starts. If two loads overlap,
// whichever finishes last wins, even when it was started first.
type View struct {
	mu       sync.Mutex
	products []models.Product
	category string
	loading  bool
	err      string
	logger   *slog.Logger
}

// NewView creates an empty view that starts out loading
func NewView(logger *slog.Logger) *View {
	return &View{
		products: []models.Product{},
		loading:  true,
		logger:   logger,
	}
}

// SelectCategory records the category the user picked
func (v *View) SelectCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.category = category
}

// Load runs fetch and applies its outcome. On success the product list is
// replaced and the error cleared; on failure the error is set and the list
// kept. Loading is cleared either way, except when no token was available,
// in which case nothing was requested.
func (v *View) Load(ctx context.Context, fetch FetchFunc) error {
	v.mu.Lock()
	wasLoading := v.loading
	v.loading = true
	v.mu.Unlock()

	products, err := fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if errors.Is(err, inventory.ErrNoToken) {
		v.loading = wasLoading
		v.err = NoTokenMessage
		return err
	}

	v.loading = false

	if err != nil {
		v.err = err.Error()
		v.logger.Error("error fetching products", inventory.ErrorAttrs(err)...)
		return err
	}

	if products == nil {
		products = []models.Product{}
	}
	v.products = products
	v.err = ""
	return nil
}

// Snapshot returns a copy of the current state
func (v *View) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	products := make([]models.Product, len(v.products))
	copy(products, v.products)
	return ViewState{
		Products: products,
		Category: v.category,
		Loading:  v.loading,
		Error:    v.err,
	}
}
