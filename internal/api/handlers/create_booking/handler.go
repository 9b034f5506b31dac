package create_booking

import (
	"errors"
	"net/http"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	createBooking "github.com/smartlab/SLB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgTeacherNotFound    = "аккаунт не найден"
	msgTeacherNotApproved = "аккаунт ещё не подтверждён администратором"
	msgRoomNotFound       = "помещение не найдено"
	msgLabUnavailable     = "лаборатория недоступна для бронирования"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgOutsideHours       = "слот выходит за рабочие часы лаборатории"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgSlotConflict       = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(teacherID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: teacher_id=%d, room_id=%d", teacherID, req.RoomID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrTeacherNotFound):
			h.logger.Warn("POST /bookings - Teacher not found: teacher_id=%d", teacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, createBooking.ErrTeacherNotApproved):
			h.logger.Warn("POST /bookings - Teacher not approved: teacher_id=%d", teacherID)
			handlers.RespondForbidden(w, msgTeacherNotApproved)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrLabUnavailable):
			h.logger.Warn("POST /bookings - Lab unavailable: teacher_id=%d", teacherID)
			handlers.RespondError(w, http.StatusConflict, msgLabUnavailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: teacher_id=%d", teacherID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: teacher_id=%d", teacherID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: teacher_id=%d", teacherID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: teacher_id=%d, room_id=%d, error=%v",
				teacherID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, teacher_id=%d, room_id=%d",
		result.ID, teacherID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
