package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetAppByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/apps" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.RawQuery; !strings.Contains(got, "app_name=demo") {
			t.Fatalf("missing app_name in query %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"app_id": "a1"})
	}))
	defer srv.Close()

	id, err := newTestClient(t, srv.URL).GetAppByName(context.Background(), "demo")
	if err != nil {
		t.Fatalf("GetAppByName: %v", err)
	}
	if id != "a1" {
		t.Fatalf("expected app id a1, got %q", id)
	}
}

func TestCreateApp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/apps/" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["app_name"] != "demo" {
			t.Fatalf("unexpected body %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"app_id": "a1"})
	}))
	defer srv.Close()

	id, err := newTestClient(t, srv.URL).CreateApp(context.Background(), "demo")
	if err != nil {
		t.Fatalf("CreateApp: %v", err)
	}
	if id != "a1" {
		t.Fatalf("expected app id a1, got %q", id)
	}
}

func TestCreateAppNon200CarriesStatusAndPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "duplicate name"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CreateApp(context.Background(), "demo")
	if err == nil {
		t.Fatalf("expected error on 400")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", reqErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "duplicate name") {
		t.Fatalf("error message missing status or payload: %q", err.Error())
	}
}

func TestGetAppByNameNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal blowup", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).GetAppByName(context.Background(), "demo")
	if err == nil {
		t.Fatalf("expected error on 502")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "internal blowup") {
		t.Fatalf("error message missing status or body text: %q", err.Error())
	}
}
