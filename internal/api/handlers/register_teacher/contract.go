package register_teacher

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

type AccountsService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TeacherResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
