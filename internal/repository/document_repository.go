package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"pgfeaturediff-server/internal/domain"
)

var (
	ErrDocumentNotFound = errors.New("feature document not found")
	ErrFetchFailed      = errors.New("feature document fetch failed")
)

// DocumentRepository loads the scraped feature matrix exactly once at
// startup. There is no reload, retry, or cache invalidation; a failed
// load is terminal for the process.
type DocumentRepository interface {
	Load() (*domain.FeatureDocument, error)
}

// FileDocumentRepository reads the document from a local JSON file.
type FileDocumentRepository struct {
	path string
}

func NewFileDocumentRepository(path string) *FileDocumentRepository {
	return &FileDocumentRepository{path: path}
}

func (r *FileDocumentRepository) Load() (*domain.FeatureDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to read document %s: %w", r.path, err)
	}

	return decodeDocument(data)
}

// HTTPDocumentRepository fetches the document from a static URL with a
// single GET. No retries and no timeout: this is a read-once fetch
// whose failure surfaces as a terminal error.
type HTTPDocumentRepository struct {
	url    string
	client *http.Client
}

func NewHTTPDocumentRepository(url string) *HTTPDocumentRepository {
	return &HTTPDocumentRepository{
		url:    url,
		client: &http.Client{},
	}
}

func (r *HTTPDocumentRepository) Load() (*domain.FeatureDocument, error) {
	resp, err := r.client.Get(r.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, r.url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrFetchFailed, resp.StatusCode, r.url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}

	return decodeDocument(data)
}

func decodeDocument(data []byte) (*domain.FeatureDocument, error) {
	var doc domain.FeatureDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode feature document: %w", err)
	}
	return &doc, nil
}
