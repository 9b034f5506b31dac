package update_material_status

import (
	"context"

	accountModels "github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

type MaterialsService interface {
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
}

type AccountsService interface {
	GetByID(ctx context.Context, id int64) (*accountModels.TeacherResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
