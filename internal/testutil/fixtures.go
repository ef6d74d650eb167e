// Package testutil provides test helper utilities for shopverse tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// TempStateDB returns a path for a fresh SQLite state database inside a
// temporary directory cleaned up with the test.
func TempStateDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.db")
}

// Envelope wraps a JSON payload in the API's success envelope.
func Envelope(data string) string {
	return fmt.Sprintf(`{"success":true,"data":%s}`, data)
}

// ErrorEnvelope builds the API's failure envelope with a message.
func ErrorEnvelope(message string) string {
	return fmt.Sprintf(`{"success":false,"message":%q}`, message)
}

// APIServer starts an httptest server that answers each path with a
// fixed body and status 200. Unknown paths return 404 with a failure
// envelope. The server is closed with the test.
func APIServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, ErrorEnvelope("not found"))
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// CatalogJSON is a three-item catalog payload matching the API's item
// shape, for tests that need a populated listing.
const CatalogJSON = `[
  {"itemId":1,"itemName":"Mug","itemCost":7.50,"itemQuantity":10,"itemCategory":"kitchen","imgname":"mug.png"},
  {"itemId":2,"itemName":"Shirt","itemCost":19.99,"itemQuantity":3,"itemCategory":"apparel","imgname":""},
  {"itemId":3,"itemName":"Poster","itemCost":4.25,"itemQuantity":0,"itemCategory":"decor","imgname":"poster.png"}
]`
