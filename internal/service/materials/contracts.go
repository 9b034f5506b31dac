package materials

import (
	"context"
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// MaterialRepository интерфейс репозитория заявок на материалы
type MaterialRepository interface {
	Create(ctx context.Context, request *domain.MaterialRequest) (*domain.MaterialRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.MaterialRequest, error)
	ListWithFilter(ctx context.Context, filter domain.MaterialRequestsFilter, limit, offset int) ([]*domain.MaterialRequest, error)
	CountWithFilter(ctx context.Context, filter domain.MaterialRequestsFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MaterialStatus, decidedAt time.Time) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
