package get_teacher_bookings

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetTeacherBookings(ctx context.Context, teacherID int64) ([]*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
