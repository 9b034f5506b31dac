package cancel_booking

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	SetStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
