package update_material_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/materials"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidStatus      = "статус должен быть Approved или Rejected"
	msgRequestNotFound    = "заявка не найдена"
	msgAlreadyDecided     = "решение по заявке уже принято"
	msgAccessDenied       = "решать заявки может только администратор"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service  MaterialsService
	accounts AccountsService
	logger   Logger
}

func NewHandler(service MaterialsService, accounts AccountsService, logger Logger) *Handler {
	return &Handler{
		service:  service,
		accounts: accounts,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/materials/{requestId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /materials/{requestId}/status - Invalid request id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	actor, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("PATCH /materials/{requestId}/status - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("PATCH /materials/{requestId}/status - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /materials/{requestId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch domain.MaterialStatus(req.Status) {
	case domain.MaterialApproved:
		err = h.service.Approve(r.Context(), requestID)
	case domain.MaterialRejected:
		err = h.service.Reject(r.Context(), requestID)
	default:
		h.logger.Warn("PATCH /materials/{requestId}/status - Invalid status: %s", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, materials.ErrRequestNotFound):
			h.logger.Warn("PATCH /materials/{requestId}/status - Not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, materials.ErrAlreadyDecided):
			h.logger.Warn("PATCH /materials/{requestId}/status - Already decided: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)

		default:
			h.logger.Error("PATCH /materials/{requestId}/status - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /materials/{requestId}/status - %s: request_id=%d by user_id=%d",
		req.Status, requestID, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
