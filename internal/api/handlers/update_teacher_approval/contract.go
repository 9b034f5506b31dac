package update_teacher_approval

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

type AccountsService interface {
	GetByID(ctx context.Context, id int64) (*models.TeacherResponse, error)
	SetApproval(ctx context.Context, id int64, approved bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
