package federation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient: srv.Client(),
		endpoint:   srv.URL,
	}
}

func TestExchangePropagatesHandle(t *testing.T) {
	var gotHandle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHandle = r.Header.Get("X-Session-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"email": "carol@example.com",
			"name": "Carol Lim",
			"picture": "https://cdn.example.com/carol.png",
			"session_token": "provider-session-token"
		}`))
	}))
	defer srv.Close()

	identity, err := testClient(srv).Exchange(context.Background(), "one-time-handle")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if gotHandle != "one-time-handle" {
		t.Fatalf("handle header %q, want one-time-handle", gotHandle)
	}
	if identity.Email != "carol@example.com" {
		t.Fatalf("email %q", identity.Email)
	}
	if identity.SessionHandle != "provider-session-token" {
		t.Fatalf("session handle %q", identity.SessionHandle)
	}
}

func TestExchangeNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv).Exchange(context.Background(), "stale-handle")
	if !errors.Is(err, ErrExchangeFailed) {
		t.Fatalf("expected ErrExchangeFailed, got %v", err)
	}
}

func TestExchangeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv).Exchange(context.Background(), "handle")
	if !errors.Is(err, ErrExchangeFailed) {
		t.Fatalf("expected ErrExchangeFailed, got %v", err)
	}
}

func TestExchangeIncompleteIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"email": "carol@example.com"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Exchange(context.Background(), "handle")
	if !errors.Is(err, ErrExchangeFailed) {
		t.Fatalf("expected ErrExchangeFailed for missing session_token, got %v", err)
	}
}

func TestExchangeEmptyHandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("server must not be called for an empty handle")
	}))
	defer srv.Close()

	_, err := testClient(srv).Exchange(context.Background(), "")
	if !errors.Is(err, ErrExchangeFailed) {
		t.Fatalf("expected ErrExchangeFailed, got %v", err)
	}
}
