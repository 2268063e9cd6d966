package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_DecodesAndSendsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing content-type")
		}
		if r.Header.Get("Authorization") != "Token abc" {
			t.Errorf("missing authorization header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"t1"}`))
	}))
	defer server.Close()

	c, err := NewWithBaseURL(server.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}

	var out struct {
		Token string `json:"token"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "auth/register/",
		map[string]string{"Authorization": "Token abc"}, map[string]string{"a": "b"}, &out)
	if err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out.Token != "t1" {
		t.Fatalf("token = %q, want t1", out.Token)
	}
}

func TestDoJSON_Non2xxKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(` {"email":["already in use"]} `))
	}))
	defer server.Close()

	c, _ := NewWithBaseURL(server.URL, time.Second)
	err := c.DoJSON(context.Background(), http.MethodPost, "/auth/register/", nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", he.StatusCode)
	}
	if he.Body != `{"email":["already in use"]}` {
		t.Fatalf("body = %q", he.Body)
	}
}

func TestDoJSON_EmptyBodyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, _ := NewWithBaseURL(server.URL, time.Second)
	var out map[string]any
	if err := c.DoJSON(context.Background(), http.MethodDelete, "/treatments/1/", nil, nil, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
}

func TestDoJSON_TransportErrorAndObserver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var gotStatus = -1
	c, _ := NewWithBaseURL(url, time.Second)
	c.Observe = func(method, path string, status int, _ time.Duration) { gotStatus = status }

	err := c.DoJSON(context.Background(), http.MethodGet, "/treatments/", nil, nil, nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if gotStatus != 0 {
		t.Fatalf("observer status = %d, want 0", gotStatus)
	}
}

func TestDoJSON_RelativeWithoutBaseURL(t *testing.T) {
	c := New(0)
	if err := c.DoJSON(context.Background(), http.MethodGet, "treatments/", nil, nil, nil); err == nil {
		t.Fatal("expected error for relative path without BaseURL")
	}
}
