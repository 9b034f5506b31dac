package list_material_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/materials"
	"github.com/smartlab/SLB-BookingService/internal/service/materials/models"
)

const (
	msgInvalidStatus = "некорректный статус заявки"
	msgAccessDenied  = "список заявок доступен только администратору"
)

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

// Handle GET /api/v1/materials?page=1&name=smith&status=Pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	actor, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /materials - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("GET /materials - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	req := &models.ListRequest{
		Page:       page,
		NameSearch: r.URL.Query().Get("name"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, materials.ErrInvalidStatus) {
			h.logger.Warn("GET /materials - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /materials - Failed to list requests: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
