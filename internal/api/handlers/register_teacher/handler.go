package register_teacher

import (
	"errors"
	"net/http"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUsernameTaken      = "имя пользователя уже занято"
	msgInvalidInput       = "некорректные данные регистрации"
)

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

// Handle POST /api/v1/teachers/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teachers/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrUsernameTaken):
			h.logger.Warn("POST /teachers/register - Username taken: username=%s", req.Username)
			handlers.RespondError(w, http.StatusConflict, msgUsernameTaken)

		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("POST /teachers/register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /teachers/register - Failed to register: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /teachers/register - Account registered: id=%d, username=%s", result.ID, result.Username)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
