package get_reports

import (
	"net/http"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/domain"
)

const msgAccessDenied = "отчёты доступны только администратору"

type Handler struct {
	service  ReportsService
	accounts AccountsService
	logger   Logger
}

func NewHandler(service ReportsService, accounts AccountsService, logger Logger) *Handler {
	return &Handler{
		service:  service,
		accounts: accounts,
		logger:   logger,
	}
}

// Handle GET /api/v1/reports
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	actor, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /reports - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("GET /reports - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.Build(r.Context())
	if err != nil {
		h.logger.Error("GET /reports - Failed to build report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
