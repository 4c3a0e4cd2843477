package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPostSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
			t.Fatalf("expected JSON content type, got %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "demo" {
			t.Fatalf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(2*time.Second).Post(context.Background(), srv.URL, map[string]string{"name": "demo"}, nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
}

func TestUploadFileStreamsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("payload")
		if err != nil {
			t.Fatalf("missing payload field: %v", err)
		}
		defer file.Close()
		if header.Filename != "data.tar" {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "archive bytes" {
			t.Fatalf("unexpected content %q", data)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(2*time.Second).UploadFile(context.Background(), srv.URL, "payload", "data.tar",
		strings.NewReader("archive bytes"))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
}

func TestDeleteSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("missing header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, err := NewRestyClient(2*time.Second).Delete(context.Background(), srv.URL,
		map[string]string{"Content-Type": "application/json"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
