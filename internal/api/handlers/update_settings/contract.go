package update_settings

import (
	"context"

	accountModels "github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
	"github.com/smartlab/SLB-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type AccountsService interface {
	GetByID(ctx context.Context, id int64) (*accountModels.TeacherResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
