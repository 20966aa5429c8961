package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/Lixing-Zhang/inventory-search/internal/inventory"
	"github.com/Lixing-Zhang/inventory-search/internal/inventory/inventorytest"
	"github.com/Lixing-Zhang/inventory-search/internal/service"
	"github.com/Lixing-Zhang/inventory-search/pkg/logger"
)

// newTestService wires a product service to a fake inventory API
func newTestService(t *testing.T) (*service.ProductService, *inventorytest.Server) {
	t.Helper()
	srv := inventorytest.NewServer(t)
	client := inventory.NewClient(srv.URL, 5*time.Second, logger.New("error"))
	return service.NewProductService(client), srv
}

func withToken(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "token", Value: inventorytest.Token})
	return req
}
