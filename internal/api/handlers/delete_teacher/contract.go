package delete_teacher

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

type AccountsService interface {
	GetByID(ctx context.Context, id int64) (*models.TeacherResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
