package delete_teacher

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts"
)

const (
	msgInvalidTeacherID = "некорректный ID аккаунта"
	msgTeacherNotFound  = "аккаунт не найден"
	msgAccessDenied     = "удалять аккаунты может только администратор"
	msgProtected        = "административный аккаунт нельзя удалить"
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

// Handle DELETE /api/v1/teachers/{teacherId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teacherID, err := strconv.ParseInt(vars["teacherId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /teachers/{teacherId} - Invalid teacher id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	actor, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("DELETE /teachers/{teacherId} - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("DELETE /teachers/{teacherId} - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	if err := h.service.Delete(r.Context(), teacherID); err != nil {
		switch {
		case errors.Is(err, accounts.ErrTeacherNotFound):
			h.logger.Warn("DELETE /teachers/{teacherId} - Not found: teacher_id=%d", teacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, accounts.ErrProtectedAccount):
			h.logger.Warn("DELETE /teachers/{teacherId} - Protected account: teacher_id=%d", teacherID)
			handlers.RespondForbidden(w, msgProtected)

		default:
			h.logger.Error("DELETE /teachers/{teacherId} - Failed: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /teachers/{teacherId} - Deleted: teacher_id=%d by user_id=%d", teacherID, userID)
	w.WriteHeader(http.StatusNoContent)
}
