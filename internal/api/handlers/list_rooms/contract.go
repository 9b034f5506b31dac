package list_rooms

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

type RoomRepository interface {
	List(ctx context.Context) ([]*domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
