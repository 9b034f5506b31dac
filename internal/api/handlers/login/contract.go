package login

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

type AccountsService interface {
	Authenticate(ctx context.Context, req *models.LoginRequest) (*models.TeacherResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
