package accounts

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// TeacherRepository интерфейс репозитория аккаунтов
type TeacherRepository interface {
	Create(ctx context.Context, teacher *domain.Teacher) (*domain.Teacher, error)
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
	GetByUsername(ctx context.Context, username string) (*domain.Teacher, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Teacher, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateApproval(ctx context.Context, id int64, approved bool) error
	Update(ctx context.Context, teacher *domain.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований (для каскадного удаления)
type BookingRepository interface {
	DeleteByTeacherID(ctx context.Context, teacherID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
