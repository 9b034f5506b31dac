package get_teacher_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidTeacherID = "некорректный ID аккаунта"
	msgAccessDenied     = "можно смотреть только свои бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// BookingsResponse список заявок учителя
type BookingsResponse struct {
	Bookings []*models.BookingResponse `json:"bookings"`
}

// Handle GET /api/v1/teachers/{teacherId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teacherID, err := strconv.ParseInt(vars["teacherId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{teacherId}/bookings - Invalid teacher id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Свою историю может смотреть только сам владелец
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID != teacherID {
		h.logger.Warn("GET /teachers/{teacherId}/bookings - Access denied: user_id=%d, teacher_id=%d", userID, teacherID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	bookings, err := h.service.GetTeacherBookings(r.Context(), teacherID)
	if err != nil {
		h.logger.Error("GET /teachers/{teacherId}/bookings - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &BookingsResponse{Bookings: bookings})
}
