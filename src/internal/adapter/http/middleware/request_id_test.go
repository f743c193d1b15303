package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_MintsIdentifierWhenAbsent(t *testing.T) {
	var seen string
	mw := RequestID()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if seen == "" {
		t.Fatal("expected a request id to be assigned")
	}
	if rr.Header().Get("X-Request-Id") != seen {
		t.Fatalf("expected response header to echo request id %q", seen)
	}
}

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	mw := RequestID()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-Id") != "client-supplied-id" {
		t.Fatalf("expected incoming request id to be preserved, got %q", rr.Header().Get("X-Request-Id"))
	}
}
