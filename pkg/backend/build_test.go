package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTarFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "context.tar")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tar fixture: %v", err)
	}
	return path
}

func TestSendDockerTarSuccess(t *testing.T) {
	tarPath := writeTarFixture(t, "fake tar bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/containers/build_image/" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("app_id") != "a1" || q.Get("variant_name") != "app.default" {
			t.Fatalf("unexpected query %q", r.URL.RawQuery)
		}

		file, header, err := r.FormFile("tar_file")
		if err != nil {
			t.Fatalf("missing tar_file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "context.tar" {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake tar bytes" {
			t.Fatalf("tar content mismatch: %q", data)
		}

		_ = json.NewEncoder(w).Encode(Image{DockerID: "sha256:abc", Tags: "demo:latest"})
	}))
	defer srv.Close()

	img, err := newTestClient(t, srv.URL).SendDockerTar(context.Background(), "a1", "app.default", tarPath)
	if err != nil {
		t.Fatalf("SendDockerTar: %v", err)
	}
	if img.DockerID != "sha256:abc" || img.Tags != "demo:latest" {
		t.Fatalf("unexpected image %+v", img)
	}
}

func TestSendDockerTarBuildFailure(t *testing.T) {
	tarPath := writeTarFixture(t, "fake tar bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "pip install failed"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).SendDockerTar(context.Background(), "a1", "app.default", tarPath)
	if err == nil {
		t.Fatalf("expected error on 500")
	}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected *BuildError, got %T: %v", err, err)
	}
	msg := err.Error()
	for _, want := range []string{"Serving the variant failed", "Docker logs", "pip install failed"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("build error missing %q:\n%s", want, msg)
		}
	}
}

func TestSendDockerTarOtherFailureIsRequestError(t *testing.T) {
	tarPath := writeTarFixture(t, "fake tar bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad archive", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).SendDockerTar(context.Background(), "a1", "app.default", tarPath)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", reqErr.StatusCode)
	}
}

func TestSendDockerTarMissingFile(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")
	_, err := c.SendDockerTar(context.Background(), "a1", "app.default", filepath.Join(t.TempDir(), "missing.tar"))
	if err == nil {
		t.Fatalf("expected error for missing tar file")
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		t.Fatalf("missing file is a caller error, not a request error: %v", err)
	}
}
