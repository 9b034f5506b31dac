package submit_material_request

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/service/materials/models"
)

type MaterialsService interface {
	Submit(ctx context.Context, req *models.SubmitRequest) (*models.MaterialRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
