package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Lixing-Zhang/inventory-search/internal/models"
)

var (
	ErrEmptySearch = errors.New("search term is empty")
)

// Categories lists the filters offered on the search page
var Categories = []string{"Makanan", "Minuman", "Kesehatan", "Kecantikan", "Perabotan"}

// ProductClient is the upstream inventory API
type ProductClient interface {
	Search(ctx context.Context, token, name string) ([]models.Product, error)
	Filter(ctx context.Context, token, category string) ([]models.Product, error)
}

// ProductService handles product lookups for the search page
type ProductService struct {
	client ProductClient
}

// NewProductService creates a new product service
func NewProductService(client ProductClient) *ProductService {
	return &ProductService{
		client: client,
	}
}

// Initial returns the unfiltered product list shown when the page opens
func (s *ProductService) Initial(ctx context.Context, token string) ([]models.Product, error) {
	return s.client.Search(ctx, token, "")
}

// ByCategory returns the products in category
func (s *ProductService) ByCategory(ctx context.Context, token, category string) ([]models.Product, error) {
	return s.client.Filter(ctx, token, category)
}

// ByName searches products by name. A blank term is rejected without a request.
func (s *ProductService) ByName(ctx context.Context, token, name string) ([]models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySearch
	}
	return s.client.Search(ctx, token, name)
}
