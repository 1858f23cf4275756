package seed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"salesdash/internal/core"
)

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"title":"a","price":10},{"title":"b","price":"abc"}]`))
	}))
	defer srv.Close()

	raws, err := NewHTTPSource(srv.Client(), srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 records, got %d", len(raws))
	}
	if string(raws[0]["title"]) != `"a"` {
		t.Fatalf("unexpected first record: %v", raws[0])
	}
}

func TestHTTPSourceNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.Client(), srv.URL).Fetch(context.Background())
	if !errors.Is(err, core.ErrUpstreamFetch) {
		t.Fatalf("expected upstream fetch error, got %v", err)
	}
}

func TestHTTPSourceMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.Client(), srv.URL).Fetch(context.Background())
	if !errors.Is(err, core.ErrUpstreamFetch) {
		t.Fatalf("expected upstream fetch error, got %v", err)
	}
}
