package reports

import (
	"context"
	"fmt"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/reports/models"
)

// Service сервис отчётов административной панели
type Service struct {
	reportRepo ReportRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(reportRepo ReportRepository, logger Logger) *Service {
	return &Service{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// Build собирает сводный отчёт: распределение по статусам,
// рейтинги по подтверждённым бронированиям и справочник контактов.
// Сводка по статусам всегда содержит все статусы, включая нулевые
func (s *Service) Build(ctx context.Context) (*models.ReportResponse, error) {
	s.logger.Info("Build: building admin report")

	counts, err := s.reportRepo.StatusCounts(ctx)
	if err != nil {
		s.logger.Error("Build: status counts error: %v", err)
		return nil, fmt.Errorf("%w: Build - status counts: %v", ErrInternal, err)
	}

	summary := make(map[string]int64, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		summary[string(status)] = counts[status]
	}

	teacherRanking, err := s.reportRepo.TeacherRanking(ctx)
	if err != nil {
		s.logger.Error("Build: teacher ranking error: %v", err)
		return nil, fmt.Errorf("%w: Build - teacher ranking: %v", ErrInternal, err)
	}

	subjectRanking, err := s.reportRepo.SubjectRanking(ctx)
	if err != nil {
		s.logger.Error("Build: subject ranking error: %v", err)
		return nil, fmt.Errorf("%w: Build - subject ranking: %v", ErrInternal, err)
	}

	directory, err := s.reportRepo.TeacherDirectory(ctx)
	if err != nil {
		s.logger.Error("Build: directory error: %v", err)
		return nil, fmt.Errorf("%w: Build - directory: %v", ErrInternal, err)
	}

	s.logger.Info("Build: report built, %d teachers ranked", len(teacherRanking))
	return &models.ReportResponse{
		StatusSummary:  summary,
		TeacherRanking: models.FromRankingEntries(teacherRanking),
		SubjectRanking: models.FromRankingEntries(subjectRanking),
		Directory:      models.FromDirectoryEntries(directory),
	}, nil
}
