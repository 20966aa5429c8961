package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/inventory-search/internal/inventory/inventorytest"
	"github.com/Lixing-Zhang/inventory-search/internal/middleware"
	"github.com/Lixing-Zhang/inventory-search/internal/models"
	"github.com/Lixing-Zhang/inventory-search/pkg/logger"
)

func newPage(t *testing.T) (http.Handler, *inventorytest.Server) {
	t.Helper()
	svc, srv := newTestService(t)
	handler := NewPageHandler(svc, logger.New("error"))
	return middleware.TokenCookie("token")(handler), srv
}

func TestPageHandler_NoToken(t *testing.T) {
	page, srv := newPage(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error: No token found") {
		t.Errorf("expected error notice, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), `class="card"`) {
		t.Error("product grid should not be rendered")
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("expected no upstream requests, got %d", n)
	}
}

func TestPageHandler_InitialLoad(t *testing.T) {
	page, srv := newPage(t)

	req := withToken(httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}

	body := w.Body.String()
	for _, it := range inventorytest.SeedItems() {
		if !strings.Contains(body, "<h2>"+it.Product.Name+"</h2>") {
			t.Errorf("expected %q on the page", it.Product.Name)
		}
	}
	if !strings.Contains(body, "Harga : 3500") || !strings.Contains(body, "Tersedia : 120 barang") {
		t.Error("expected price and stock lines for indomie goreng")
	}
	if got := strings.Count(body, `class="card"`); got != len(inventorytest.SeedItems()) {
		t.Errorf("expected %d cards, got %d", len(inventorytest.SeedItems()), got)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 upstream request, got %d", len(reqs))
	}
	if reqs[0].Path != "/get-product/search" || len(reqs[0].Query) != 0 {
		t.Errorf("unexpected upstream request %s?%s", reqs[0].Path, reqs[0].Query.Encode())
	}
}

func TestPageHandler_CategoryFilter(t *testing.T) {
	page, srv := newPage(t)

	req := withToken(httptest.NewRequest(http.MethodGet, "/?kategori=Minuman", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	upstream, _ := srv.LastRequest()
	if upstream.Path != "/get-product/filter" || upstream.Query.Get("kategori") != "Minuman" {
		t.Errorf("unexpected upstream request %s?%s", upstream.Path, upstream.Query.Encode())
	}

	body := w.Body.String()
	if !strings.Contains(body, "teh botol") || !strings.Contains(body, "kopi susu") {
		t.Error("expected drinks on the page")
	}
	if strings.Contains(body, "indomie goreng") {
		t.Error("food should be filtered out")
	}
	if !strings.Contains(body, `data-value="Minuman" class="active"`) {
		t.Error("expected selected category to be highlighted")
	}
}

func TestPageHandler_Search(t *testing.T) {
	page, srv := newPage(t)

	req := withToken(httptest.NewRequest(http.MethodGet, "/?nama=sabun", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	upstream, _ := srv.LastRequest()
	if upstream.Path != "/get-product/search" || upstream.Query.Get("nama") != "sabun" {
		t.Errorf("unexpected upstream request %s?%s", upstream.Path, upstream.Query.Encode())
	}

	body := w.Body.String()
	if !strings.Contains(body, "sabun wajah") {
		t.Error("expected search result on the page")
	}
	if strings.Count(body, `class="card"`) != 1 {
		t.Errorf("expected exactly one card")
	}
	if !strings.Contains(body, `name="nama" value=""`) {
		t.Error("expected the search input to be cleared")
	}
}

func TestPageHandler_SearchTakesPrecedence(t *testing.T) {
	page, srv := newPage(t)

	req := withToken(httptest.NewRequest(http.MethodGet, "/?nama=kopi&kategori=Makanan", nil))
	page.ServeHTTP(httptest.NewRecorder(), req)

	upstream, _ := srv.LastRequest()
	if upstream.Path != "/get-product/search" || upstream.Query.Get("nama") != "kopi" {
		t.Errorf("unexpected upstream request %s?%s", upstream.Path, upstream.Query.Encode())
	}
}

func TestPageHandler_BlankSearchLoadsEverything(t *testing.T) {
	page, srv := newPage(t)

	req := withToken(httptest.NewRequest(http.MethodGet, "/?nama=+++", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	upstream, _ := srv.LastRequest()
	if upstream.Query.Has("nama") {
		t.Errorf("blank search should not be sent upstream, got %s", upstream.Query.Encode())
	}
}

func TestPageHandler_UpstreamFailure(t *testing.T) {
	page, srv := newPage(t)
	srv.FailWith(http.StatusInternalServerError)

	req := withToken(httptest.NewRequest(http.MethodGet, "/?kategori=Makanan", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Error: Request failed with status code 500") {
		t.Errorf("expected error notice, got %s", body)
	}
	if strings.Contains(body, `class="card"`) {
		t.Error("product grid should not be rendered on failure")
	}
}

func TestPageHandler_EmptyResult(t *testing.T) {
	page, _ := newPage(t)

	req := withToken(httptest.NewRequest(http.MethodGet, "/?nama=tidakada", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "Tidak ada produk") {
		t.Error("expected empty state message")
	}
}

func TestPageHandler_EscapesProductNames(t *testing.T) {
	page, srv := newPage(t)
	srv.SetItems([]inventorytest.Item{
		{Category: "Makanan", Product: models.Product{Name: "<script>alert(1)</script>", Price: "1", Quantity: "1"}},
	})

	req := withToken(httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()
	page.ServeHTTP(w, req)

	if strings.Contains(w.Body.String(), "<script>alert(1)</script>") {
		t.Error("product name must be HTML-escaped")
	}
}
