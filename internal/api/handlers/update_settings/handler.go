package update_settings

import (
	"errors"
	"net/http"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/settings"
	"github.com/smartlab/SLB-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidValue       = "некорректное значение настройки"
	msgAccessDenied       = "менять настройки может только администратор"
)

type Handler struct {
	service  SettingsService
	accounts AccountsService
	logger   Logger
}

func NewHandler(service SettingsService, accounts AccountsService, logger Logger) *Handler {
	return &Handler{
		service:  service,
		accounts: accounts,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	actor, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("PATCH /settings - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("PATCH /settings - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidSessionDuration),
			errors.Is(err, settings.ErrInvalidLabStatus),
			errors.Is(err, settings.ErrInvalidCutoff):
			h.logger.Warn("PATCH /settings - Invalid value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidValue)

		default:
			h.logger.Error("PATCH /settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /settings - Settings updated by user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
