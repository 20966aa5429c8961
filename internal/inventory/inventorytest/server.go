// Package inventorytest provides an in-memory inventory API for tests.
package inventorytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/inventory-search/internal/models"
	"github.com/go-chi/chi/v5"
)

// Token is the bearer token the fake server accepts by default
const Token = "test-token"

// Item is a seeded product together with its category
type Item struct {
	Category string
	Product  models.Product
}

// Request is a recorded call to the fake server
type Request struct {
	Path          string
	Query         url.Values
	Authorization string
	RequestID     string
}

// Server is a fake inventory API backed by an in-memory product set
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	items      []Item
	requests   []Request
	failStatus int
	token      string
}

// SeedItems returns the default inventory
func SeedItems() []Item {
	return []Item{
		{"Makanan", models.Product{Name: "indomie goreng", Price: "3500", Quantity: "120"}},
		{"Makanan", models.Product{Name: "roti tawar", Price: "15000", Quantity: "20"}},
		{"Minuman", models.Product{Name: "teh botol", Price: "5000", Quantity: "48"}},
		{"Minuman", models.Product{Name: "kopi susu", Price: "Rp 8.000", Quantity: "15"}},
		{"Kesehatan", models.Product{Name: "vitamin c", Price: "25000", Quantity: "30"}},
		{"Kecantikan", models.Product{Name: "sabun wajah", Price: "32000", Quantity: "12"}},
		{"Perabotan", models.Product{Name: "sapu ijuk", Price: "18000", Quantity: "7"}},
	}
}

// NewServer starts a fake inventory API seeded with SeedItems.
// The server is closed when the test finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		items: SeedItems(),
		token: Token,
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.auth)
	r.Get("/get-product/search", s.search)
	r.Get("/get-product/filter", s.filter)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)

	return s
}

// FailWith makes every subsequent request answer with status; 0 restores normal behaviour
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// SetItems replaces the inventory
func (s *Server) SetItems(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

// Requests returns the calls received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent call, or false if none was made
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Products returns the seeded products matching pred, in seed order
func (s *Server) Products(pred func(Item) bool) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, 0, len(s.items))
	for _, it := range s.items {
		if pred == nil || pred(it) {
			products = append(products, it.Product)
		}
	}
	return products
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-Id"),
		})
		fail := s.failStatus
		s.mu.Unlock()

		if fail != 0 {
			writeJSON(w, fail, map[string]string{"message": http.StatusText(fail)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.URL.Query().Get("nama"))
	products := s.Products(func(it Item) bool {
		return strings.Contains(strings.ToLower(it.Product.Name), name)
	})
	writeJSON(w, http.StatusOK, models.ProductList{Products: products})
}

func (s *Server) filter(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("kategori")
	products := s.Products(func(it Item) bool {
		return strings.EqualFold(it.Category, category)
	})
	writeJSON(w, http.StatusOK, models.ProductList{Products: products})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
