package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pgfeaturediff-server/internal/domain"
	"pgfeaturediff-server/pkg/etag"
	"pgfeaturediff-server/web"
)

// StaticHandler serves the embedded comparison page and the raw dataset
// bytes. Both are immutable for the process lifetime, so their ETags
// are computed once and conditional requests short-circuit to 304.
type StaticHandler struct {
	page    []byte
	pageTag string

	dataset    []byte
	datasetTag string
}

func NewStaticHandler(doc *domain.FeatureDocument) (*StaticHandler, error) {
	dataset, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}

	return &StaticHandler{
		page:       web.Index,
		pageTag:    etag.For(web.Index),
		dataset:    dataset,
		datasetTag: etag.For(dataset),
	}, nil
}

func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.page, h.pageTag, "text/html; charset=utf-8")
}

func (h *StaticHandler) Dataset(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.dataset, h.datasetTag, "application/json")
}

func (h *StaticHandler) serve(w http.ResponseWriter, r *http.Request, body []byte, tag, contentType string) {
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")

	if etag.Matches(r, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
