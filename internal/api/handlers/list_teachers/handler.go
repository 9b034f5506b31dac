package list_teachers

import (
	"net/http"
	"strconv"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/domain"
)

const msgAccessDenied = "список аккаунтов доступен только администратору"

type Handler struct {
	service AccountsService
	logger  Logger
}

func NewHandler(service AccountsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers?page=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	actor, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /teachers - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("GET /teachers - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.service.List(r.Context(), page)
	if err != nil {
		h.logger.Error("GET /teachers - Failed to list accounts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
