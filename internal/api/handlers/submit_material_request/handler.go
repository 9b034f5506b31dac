package submit_material_request

import (
	"errors"
	"net/http"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/service/materials"
	"github.com/smartlab/SLB-BookingService/internal/service/materials/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	service MaterialsService
	logger  Logger
}

func NewHandler(service MaterialsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/materials
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /materials - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		if errors.Is(err, materials.ErrInvalidInput) {
			h.logger.Warn("POST /materials - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /materials - Failed to submit request: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /materials - Material request submitted: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
