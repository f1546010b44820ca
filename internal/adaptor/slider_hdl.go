package adaptor

import (
	"net/http"

	"kickstreet/internal/dto/request"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"go.uber.org/zap"
)

type SliderHandler struct {
	service usecase.SliderService
	log     *zap.Logger
}

func NewSliderHandler(service usecase.SliderService, log *zap.Logger) *SliderHandler {
	return &SliderHandler{
		service: service,
		log:     log.With(zap.String("handler", "slider")),
	}
}

// Active handles GET /api/sliders
func (h *SliderHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /api/admin/sliders
func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *SliderHandler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	sliders, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		handleServiceError(w, h.log, err, "list sliders")
		return
	}

	utils.ResponseSuccess(w, "Sliders retrieved successfully", sliders)
}

// Create handles POST /api/admin/sliders
func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SliderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	slider, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create slider")
		return
	}

	utils.ResponseCreated(w, "Slider created successfully", slider)
}

// QuickAdd handles POST /api/admin/sliders/quick-add
func (h *SliderHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.service.QuickAdd(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "quick-add sliders")
		return
	}

	utils.ResponseCreated(w, "Sliders created from latest products", sliders)
}

// GetByID handles GET /api/admin/sliders/{id}
func (h *SliderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	slider, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get slider")
		return
	}

	utils.ResponseSuccess(w, "Slider retrieved successfully", slider)
}

// Update handles PUT /api/admin/sliders/{id}
func (h *SliderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.SliderUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	slider, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update slider")
		return
	}

	utils.ResponseSuccess(w, "Slider updated successfully", slider)
}

// Delete handles DELETE /api/admin/sliders/{id}
func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete slider")
		return
	}

	utils.ResponseSuccess(w, "Slider deleted successfully", nil)
}
