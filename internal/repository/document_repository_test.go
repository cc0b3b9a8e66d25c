package repository

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleDocument = `{
	"last_updated": "2026-08-01",
	"versions": ["9.6", "10", "11"],
	"features": [
		{
			"id": "logical_replication",
			"name": "Logical replication",
			"category": "Replication",
			"introduced_in": "10",
			"deprecated_in": null,
			"present_in": ["10", "11"],
			"docs_url": "https://www.postgresql.org/docs/current/logical-replication.html"
		}
	]
}`

func TestFileDocumentRepository_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feature_matrix.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := NewFileDocumentRepository(path).Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if doc.LastUpdated != "2026-08-01" {
		t.Errorf("last_updated = %q, want 2026-08-01", doc.LastUpdated)
	}
	if len(doc.Versions) != 3 {
		t.Errorf("expected 3 versions, got %d", len(doc.Versions))
	}
	if len(doc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(doc.Features))
	}

	f := doc.Features[0]
	if f.ID != "logical_replication" || f.IntroducedIn != "10" {
		t.Errorf("unexpected feature decoded: %+v", f)
	}
	if f.Deprecated() {
		t.Error("null deprecated_in must decode as not deprecated")
	}
	if len(f.PresentIn) != 2 {
		t.Errorf("expected present_in carried through, got %v", f.PresentIn)
	}
}

func TestFileDocumentRepository_LoadMissingFile(t *testing.T) {
	_, err := NewFileDocumentRepository(filepath.Join(t.TempDir(), "absent.json")).Load()
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestFileDocumentRepository_LoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := NewFileDocumentRepository(path).Load(); err == nil {
		t.Error("expected decode error for malformed JSON")
	}
}

func TestHTTPDocumentRepository_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	doc, err := NewHTTPDocumentRepository(srv.URL + "/feature_matrix.json").Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(doc.Features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(doc.Features))
	}
}

func TestHTTPDocumentRepository_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{
			name:    "not found",
			status:  http.StatusNotFound,
			wantErr: ErrDocumentNotFound,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			wantErr: ErrFetchFailed,
		},
		{
			name:    "bad gateway",
			status:  http.StatusBadGateway,
			wantErr: ErrFetchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			if _, err := NewHTTPDocumentRepository(srv.URL).Load(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHTTPDocumentRepository_LoadConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := NewHTTPDocumentRepository(srv.URL).Load(); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed for refused connection, got %v", err)
	}
}
