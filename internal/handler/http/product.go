package http

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eduatlas/catalog/pkg/httputil"
	"github.com/eduatlas/catalog/pkg/validator"

	"github.com/eduatlas/catalog/internal/domain"
	"github.com/eduatlas/catalog/internal/service"
)

// maxUploadBytes caps the request body; pictures above this size are
// rejected before the CDN sees them.
const maxUploadBytes = 10 << 20

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateProductRequest carries the writable product fields. The picture
// arrives as a separate multipart file part, not in this struct.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Department  string `json:"department" validate:"omitempty,max=64"`
	Type        string `json:"type" validate:"omitempty,oneof=PROFESSOR CLASS SCHOOL"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Address     string `json:"address" validate:"omitempty,max=500"`
	Links       string `json:"links" validate:"omitempty,url"`
	Point       string `json:"point" validate:"omitempty,max=128"`
	GradeFrom   int    `json:"grade_from" validate:"omitempty,gte=1,lte=12"`
	GradeTo     int    `json:"grade_to" validate:"omitempty,gte=1,lte=12"`
}

// --- Handlers ---

// CreateProduct handles POST /product. The body is either JSON or a
// multipart form; only the multipart form can carry a picture (file part
// "image").
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	input := &service.CreateProductInput{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if !h.decodeMultipart(w, r, input) {
			return
		}
	} else {
		if !h.decodeJSON(w, r, input) {
			return
		}
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product.View()})
}

func (h *ProductHandler) decodeJSON(w http.ResponseWriter, r *http.Request, input *service.CreateProductInput) bool {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}

	fillInput(input, &req)
	return true
}

func (h *ProductHandler) decodeMultipart(w http.ResponseWriter, r *http.Request, input *service.CreateProductInput) bool {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart form: " + err.Error()},
		})
		return false
	}

	req := CreateProductRequest{
		Name:        r.FormValue("name"),
		Department:  r.FormValue("department"),
		Type:        r.FormValue("type"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Links:       r.FormValue("links"),
		Point:       r.FormValue("point"),
	}
	for field, dst := range map[string]*int{"grade_from": &req.GradeFrom, "grade_to": &req.GradeTo} {
		if v := r.FormValue(field); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: field + " must be an integer"},
				})
				return false
			}
			*dst = n
		}
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}

	fillInput(input, &req)

	file, header, err := r.FormFile("image")
	if err == nil {
		input.ImageName = header.Filename
		input.Image = file
	} else if err != http.ErrMissingFile {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid image part: " + err.Error()},
		})
		return false
	}

	return true
}

func fillInput(input *service.CreateProductInput, req *CreateProductRequest) {
	input.Name = req.Name
	input.Department = req.Department
	input.Type = req.Type
	input.Description = req.Description
	input.Address = req.Address
	input.Links = req.Links
	input.Point = req.Point
	input.GradeFrom = req.GradeFrom
	input.GradeTo = req.GradeTo
}

// ListProducts handles GET /product?page=N. Pages are zero-based and of
// fixed size, ordered by id ascending.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := 0
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a non-negative integer"},
			})
			return
		}
		page = n
	}

	products, err := h.service.ListProducts(r.Context(), page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Views(products)})
}

// GetProduct handles GET /product/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product.View()})
}
