package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/settings/models"
)

// Service сервис системных настроек.
// Хранилище держит значения как строки; сервис отдаёт типизированный
// снимок, приводя повреждённые значения к значениям по умолчанию
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Snapshot возвращает типизированный снимок политики бронирования.
// Отсутствующие и повреждённые значения заменяются значениями по умолчанию
func (s *Service) Snapshot(ctx context.Context) (domain.Settings, error) {
	values, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Snapshot: repository error: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: Snapshot - repository error: %v", ErrInternal, err)
	}

	return domain.SettingsFromValues(values), nil
}

// Get возвращает текущие настройки в виде response-модели
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(snapshot), nil
}

// Update обновляет указанные поля политики бронирования.
// Каждое поле валидируется до записи; неуказанные поля не трогаются
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating system settings")

	if req.SessionDurationMinutes != nil {
		v := *req.SessionDurationMinutes
		if v < domain.MinSessionDurationMinutes || v > domain.MaxSessionDurationMinutes {
			s.logger.Warn("Update: invalid session duration %d", v)
			return nil, fmt.Errorf("%w: must be between %d and %d minutes",
				ErrInvalidSessionDuration, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
		}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingSessionDuration, strconv.Itoa(v)); err != nil {
			s.logger.Error("Update: failed to store session duration: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	if req.LabStatus != nil {
		status, valid := domain.ParseLabStatus(*req.LabStatus)
		if !valid {
			s.logger.Warn("Update: invalid lab status %q", *req.LabStatus)
			return nil, fmt.Errorf("%w: %q", ErrInvalidLabStatus, *req.LabStatus)
		}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingLabStatus, string(status)); err != nil {
			s.logger.Error("Update: failed to store lab status: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	if req.BookingCutoffMinutes != nil {
		v := *req.BookingCutoffMinutes
		if v < domain.MinBookingCutoffMinutes || v > domain.MaxBookingCutoffMinutes {
			s.logger.Warn("Update: invalid booking cutoff %d", v)
			return nil, fmt.Errorf("%w: must be between %d and %d minutes",
				ErrInvalidCutoff, domain.MinBookingCutoffMinutes, domain.MaxBookingCutoffMinutes)
		}
		if err := s.settingsRepo.Upsert(ctx, domain.SettingBookingCutoff, strconv.Itoa(v)); err != nil {
			s.logger.Error("Update: failed to store booking cutoff: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: system settings updated")
	return s.Get(ctx)
}
