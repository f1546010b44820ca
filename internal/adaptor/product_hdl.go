package adaptor

import (
	"net/http"
	"strings"

	"kickstreet/internal/dto/request"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// ==================== PUBLIC ====================

// List handles GET /api/products?category=Men&search=air&page=1&per_page=12
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := request.PaginationFromQuery(query)

	products, err := h.service.List(r.Context(), page, query.Get("category"), strings.TrimSpace(query.Get("search")))
	if err != nil {
		handleServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// GetByID handles GET /api/products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", product)
}

// GetBySlug handles GET /api/products/slug/{slug}
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, h.log, err, "get product by slug")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", product)
}

// ==================== ADMIN ====================

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", product)
}

// Update handles PUT /api/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.ProductUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", product)
}

// Delete handles DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}

// Upload handles POST /api/admin/upload. It takes a multipart "file" field or a JSON body
// whose file is a data URI or remote URL.
func (h *ProductHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			utils.ResponseBadRequest(w, "Invalid multipart form", nil)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string{"file": "This field is required"})
			return
		}
		defer file.Close()

		h.upload(w, r, file, r.FormValue("folder"))
		return
	}

	var req request.UploadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.upload(w, r, req.File, req.Folder)
}

func (h *ProductHandler) upload(w http.ResponseWriter, r *http.Request, file any, folder string) {
	uploaded, err := h.service.UploadImage(r.Context(), file, folder)
	if err != nil {
		handleServiceError(w, h.log, err, "upload image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded successfully", uploaded)
}
