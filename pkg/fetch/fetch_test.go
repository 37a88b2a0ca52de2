package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != defaultUserAgent {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte("listing page"))
	}))
	defer srv.Close()

	body, err := NewClient(WithBaseDelay(time.Millisecond)).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if body != "listing page" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchRetriesServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseDelay(time.Millisecond), WithMaxRetries(3))
	body, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error after retries: %v", err)
	}
	if body != "ok" {
		t.Errorf("body = %q", body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestFetchDoesNotRetryClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseDelay(time.Millisecond), WithMaxRetries(3))
	_, err := c.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var ferr *Error
	if !errors.As(err, &ferr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if ferr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", ferr.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d calls, want 1 (4xx is not retried)", got)
	}
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithBaseDelay(time.Millisecond), WithMaxRetries(2))
	_, err := c.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d calls, want 3 (1 + 2 retries)", got)
	}
}

func TestFetchHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(WithBaseDelay(time.Hour), WithMaxRetries(3))
	_, err := c.Fetch(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
