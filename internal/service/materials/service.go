package materials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	materialRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/material"
	"github.com/smartlab/SLB-BookingService/internal/service/materials/models"
	"github.com/smartlab/SLB-BookingService/pkg/paging"
)

// Service сервис заявок на выдачу материалов
type Service struct {
	materialRepo MaterialRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса материалов
func NewService(materialRepo MaterialRepository, logger Logger) *Service {
	return &Service{
		materialRepo: materialRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Submit регистрирует новую заявку на материалы со статусом Pending
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*models.MaterialRequestResponse, error) {
	s.logger.Info("Submit: new material request from %s", req.FullName)

	request, err := s.buildRequest(req)
	if err != nil {
		s.logger.Warn("Submit: invalid request from %s: %v", req.FullName, err)
		return nil, err
	}

	created, err := s.materialRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: material request id=%d registered", created.ID)
	return models.FromDomainRequest(created), nil
}

// List возвращает страницу заявок, свежие первыми.
// Поддерживает поиск по имени и фильтр по статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.MaterialRequestListResponse, error) {
	filter := domain.MaterialRequestsFilter{
		NameSearch: strings.TrimSpace(req.NameSearch),
	}
	if req.Status != nil {
		status, valid := domain.ParseMaterialStatus(*req.Status)
		if !valid {
			s.logger.Warn("List: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	total, err := s.materialRepo.CountWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	params, totalPages := paging.Normalize(req.Page, paging.DefaultPerPage, total)

	requests, err := s.materialRepo.ListWithFilter(ctx, filter, params.PerPage, params.Offset())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.MaterialRequestListResponse{
		Requests:   models.FromDomainRequestList(requests),
		Page:       params.Page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// Approve подтверждает заявку на материалы
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.decide(ctx, id, domain.MaterialApproved)
}

// Reject отклоняет заявку на материалы
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.decide(ctx, id, domain.MaterialRejected)
}

// decide фиксирует решение по заявке. Повторное решение запрещено
func (s *Service) decide(ctx context.Context, id int64, status domain.MaterialStatus) error {
	s.logger.Info("decide: material request id=%d -> %s", id, status)

	request, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, materialRepo.ErrRequestNotFound) {
			s.logger.Warn("decide: material request id=%d not found", id)
			return ErrRequestNotFound
		}
		s.logger.Error("decide: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: decide - repository error: %v", ErrInternal, err)
	}

	if request.IsDecided() {
		s.logger.Warn("decide: material request id=%d already %s", id, request.Status)
		return fmt.Errorf("%w: already %s", ErrAlreadyDecided, request.Status)
	}

	if err := s.materialRepo.UpdateStatus(ctx, id, status, s.timeProvider.Now()); err != nil {
		if errors.Is(err, materialRepo.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("decide: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: decide - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("decide: material request id=%d is now %s", id, status)
	return nil
}

// buildRequest валидирует и конвертирует входную заявку в domain-модель
func (s *Service) buildRequest(req *models.SubmitRequest) (*domain.MaterialRequest, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.MaterialName) == "" {
		return nil, fmt.Errorf("%w: material name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.LetterFile) == "" {
		return nil, fmt.Errorf("%w: permission letter is required", ErrInvalidInput)
	}

	borrowed, err := time.Parse(domain.DateFormat, req.BorrowedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: borrowed date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	returned, err := time.Parse(domain.DateFormat, req.ReturnedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: returned date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if returned.Before(borrowed) {
		return nil, fmt.Errorf("%w: returned date must not precede borrowed date", ErrInvalidInput)
	}

	return &domain.MaterialRequest{
		FullName:     strings.TrimSpace(req.FullName),
		Gender:       strings.TrimSpace(req.Gender),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		ClassTeacher: req.ClassTeacher,
		MaterialName: strings.TrimSpace(req.MaterialName),
		BorrowedDate: borrowed,
		ReturnedDate: returned,
		Reason:       req.Reason,
		LetterFile:   req.LetterFile,
		Status:       domain.MaterialPending,
	}, nil
}
