package list_material_requests

import (
	"context"

	accountModels "github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
	"github.com/smartlab/SLB-BookingService/internal/service/materials/models"
)

type MaterialsService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.MaterialRequestListResponse, error)
}

type AccountsService interface {
	GetByID(ctx context.Context, id int64) (*accountModels.TeacherResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
