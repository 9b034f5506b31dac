package reports

import (
	"context"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// ReportRepository интерфейс репозитория агрегатов для отчётов
type ReportRepository interface {
	StatusCounts(ctx context.Context) (map[domain.BookingStatus]int64, error)
	TeacherRanking(ctx context.Context) ([]domain.RankingEntry, error)
	SubjectRanking(ctx context.Context) ([]domain.RankingEntry, error)
	TeacherDirectory(ctx context.Context) ([]domain.TeacherDirectoryEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
