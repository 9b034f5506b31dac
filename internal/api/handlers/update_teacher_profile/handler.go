package update_teacher_profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTeacherID   = "некорректный ID аккаунта"
	msgInvalidInput       = "некорректные данные профиля"
	msgTeacherNotFound    = "аккаунт не найден"
	msgAccessDenied       = "можно менять только свой профиль"
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

// Handle PATCH /api/v1/teachers/{teacherId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teacherID, err := strconv.ParseInt(vars["teacherId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /teachers/{teacherId} - Invalid teacher id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID != teacherID {
		h.logger.Warn("PATCH /teachers/{teacherId} - Access denied: user_id=%d, teacher_id=%d", userID, teacherID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /teachers/{teacherId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), teacherID, &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrTeacherNotFound):
			h.logger.Warn("PATCH /teachers/{teacherId} - Not found: teacher_id=%d", teacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("PATCH /teachers/{teacherId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /teachers/{teacherId} - Failed: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /teachers/{teacherId} - Profile updated: teacher_id=%d", teacherID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
