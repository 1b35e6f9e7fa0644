package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGETSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Default"); got != "yes" {
			t.Errorf("Expected default header, got %q", got)
		}
		if got := r.Header.Get("Referer"); got != "https://www.nasdaq.com/market-activity/earnings" {
			t.Errorf("Expected Nasdaq referer, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHeader("X-Default", "yes"), WithLogging(true))
	resp, err := client.GET(context.Background(), "/ping", NasdaqHeaders())
	if err != nil {
		t.Fatalf("GET() error = %v", err)
	}

	var body struct {
		OK bool `json:"ok"`
	}
	if err := resp.ParseJSON(&body); err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if !body.OK {
		t.Error("Expected ok=true")
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestGETStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient()
	_, err := client.GET(context.Background(), srv.URL+"/x")
	if err == nil {
		t.Fatal("Expected error for 403")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", statusErr.StatusCode)
	}
}

func TestGETTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(WithTimeout(20 * time.Millisecond))
	if _, err := client.GET(context.Background(), srv.URL); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestParseJSONInvalid(t *testing.T) {
	resp := &Response{Body: []byte("<html>")}
	var v map[string]any
	if err := resp.ParseJSON(&v); err == nil {
		t.Error("Expected parse error")
	}
	if resp.String() != "<html>" {
		t.Errorf("Expected raw body, got %q", resp.String())
	}
}
