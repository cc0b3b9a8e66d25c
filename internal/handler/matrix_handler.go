package handler

import (
	"net/http"
	"strings"

	"pgfeaturediff-server/internal/domain"
	"pgfeaturediff-server/internal/service"
	"pgfeaturediff-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type MatrixHandler struct {
	matrixService *service.MatrixService
	validate      *validator.Validate
}

func NewMatrixHandler(matrixService *service.MatrixService) *MatrixHandler {
	return &MatrixHandler{
		matrixService: matrixService,
		validate:      validator.New(),
	}
}

// Versions lists the selectable version labels and the default range.
func (h *MatrixHandler) Versions(w http.ResponseWriter, r *http.Request) {
	defaultFrom, defaultTo := h.matrixService.DefaultRange()

	response.Success(w, &domain.VersionsResponse{
		Versions:    h.matrixService.Versions(),
		DefaultFrom: defaultFrom,
		DefaultTo:   defaultTo,
		LastUpdated: h.matrixService.LastUpdated(),
	})
}

// Compare computes the full comparison view for the requested range.
// Unknown from/to labels fall back to the default range silently; the
// response reports the labels actually used so clients can write them
// back to the URL.
func (h *MatrixHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req := compareRequestFromQuery(r)

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "invalid comparison request")
		return
	}

	response.Success(w, h.matrixService.Compare(req))
}

// Categories returns only the per-category summary for the range.
func (h *MatrixHandler) Categories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	summary := h.matrixService.Summary(query.Get("from"), query.Get("to"))
	response.Success(w, summary)
}

// Document returns the loaded feature document.
func (h *MatrixHandler) Document(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.matrixService.Document())
}

func compareRequestFromQuery(r *http.Request) *domain.CompareRequest {
	query := r.URL.Query()

	var categories []string
	for _, c := range strings.Split(query.Get("categories"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	return &domain.CompareRequest{
		From:       query.Get("from"),
		To:         query.Get("to"),
		Search:     query.Get("q"),
		Categories: categories,
	}
}
