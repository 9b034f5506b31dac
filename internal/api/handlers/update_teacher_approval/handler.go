package update_teacher_approval

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTeacherID   = "некорректный ID аккаунта"
	msgTeacherNotFound    = "аккаунт не найден"
	msgAccessDenied       = "подтверждать аккаунты может только администратор"
)

// UpdateApprovalRequest HTTP request model
type UpdateApprovalRequest struct {
	Approved bool `json:"approved"`
}

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

// Handle PATCH /api/v1/teachers/{teacherId}/approval
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teacherID, err := strconv.ParseInt(vars["teacherId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /teachers/{teacherId}/approval - Invalid teacher id: %v", err)
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
		h.logger.Error("PATCH /teachers/{teacherId}/approval - Failed to get actor id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if actor.Role != string(domain.RoleAdmin) {
		h.logger.Warn("PATCH /teachers/{teacherId}/approval - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req UpdateApprovalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /teachers/{teacherId}/approval - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetApproval(r.Context(), teacherID, req.Approved); err != nil {
		if errors.Is(err, accounts.ErrTeacherNotFound) {
			h.logger.Warn("PATCH /teachers/{teacherId}/approval - Not found: teacher_id=%d", teacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)
			return
		}
		h.logger.Error("PATCH /teachers/{teacherId}/approval - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /teachers/{teacherId}/approval - Set approved=%t: teacher_id=%d by user_id=%d",
		req.Approved, teacherID, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}
