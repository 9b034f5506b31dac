package create_booking

import (
	"fmt"
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TeacherID <= 0 {
		return fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Equipment != nil && len(*req.Equipment) > domain.MaxEquipmentLength {
		return fmt.Errorf("%w: equipment description is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateOperatingWindow проверяет, что слот целиком лежит в рабочих часах
func validateOperatingWindow(start, end types.TimeString, window domain.DayWindow) error {
	if start.IsBefore(window.OpenTime) {
		return fmt.Errorf("%w: lab opens at %s", ErrOutsideOperatingHours, window.OpenTime)
	}
	if end.IsAfter(window.CloseTime) {
		return fmt.Errorf("%w: lab closes at %s", ErrOutsideOperatingHours, window.CloseTime)
	}
	return nil
}

// validateCutoff проверяет порог отсечки для бронирований на сегодня
func validateCutoff(bookingDate time.Time, startTime types.TimeString, now time.Time, cutoffMinutes int) error {
	// Для будущих дат отсечка не действует
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(cutoffMinutes)
	if err != nil {
		// Порог уходит за полночь - сегодня бронировать уже нельзя
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, cutoffMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, cutoffMinutes)
	}

	return nil
}

// findConflictingBooking возвращает первое активное бронирование,
// пересекающееся с интервалом [start, end). Границы не считаются
// пересечением
func findConflictingBooking(start, end types.TimeString, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(start, end) {
			return booking
		}
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
