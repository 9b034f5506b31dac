package get_reports

import (
	"context"

	accountModels "github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
	"github.com/smartlab/SLB-BookingService/internal/service/reports/models"
)

type ReportsService interface {
	Build(ctx context.Context) (*models.ReportResponse, error)
}

type AccountsService interface {
	GetByID(ctx context.Context, id int64) (*accountModels.TeacherResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
