// Package testutil holds fixtures shared by HTTP-level tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookmanager/internal/book"
	"bookmanager/internal/store"
)

// TestBook is the create body used across end-to-end tests.
var TestBook = book.CreateInput{
	Title:       "Dune",
	Author:      "Frank Herbert",
	Year:        1965,
	Genre:       "Sci-Fi",
	Description: "A desert planet saga.",
}

// NewSQLiteStore returns a migrated in-memory store closed at test end.
func NewSQLiteStore(t testing.TB) store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, "sqlite://:memory:", 5*time.Second)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if _, err := store.Migrate(ctx, s); err != nil {
		t.Fatalf("migrate sqlite store: %v", err)
	}
	return s
}

// NewRequest creates a new HTTP request for testing. A non-nil body is
// sent as JSON; a string body is sent verbatim.
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(body)
	}
	if bodyBytes == nil {
		return httptest.NewRequest(method, path, nil)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// RecordResponse is a decoded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Raw    []byte
}

// Do serves r with h and records the response.
func Do(h http.Handler, r *http.Request) RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return RecordHTTPResponse(w)
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)
	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Raw:    bodyBytes,
	}
}

// Decode unmarshals the recorded body into dst.
func (r RecordResponse) Decode(t testing.TB, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.Raw, dst); err != nil {
		t.Fatalf("decode response body %q: %v", r.Raw, err)
	}
}
