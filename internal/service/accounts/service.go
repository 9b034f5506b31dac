package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	teacherRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/teacher"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
	"github.com/smartlab/SLB-BookingService/pkg/paging"
)

// Service сервис аккаунтов: регистрация, аутентификация, подтверждение
// и удаление с каскадом бронирований
type Service struct {
	teacherRepo TeacherRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса аккаунтов
func NewService(
	teacherRepo TeacherRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		teacherRepo: teacherRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Register регистрирует новый аккаунт учителя.
// Аккаунт создаётся неподтверждённым и не может подавать заявки,
// пока администратор его не одобрит
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.TeacherResponse, error) {
	s.logger.Info("Register: registering account username=%s", req.Username)

	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: invalid request for username=%s: %v", req.Username, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	teacher := &domain.Teacher{
		Name:          strings.TrimSpace(req.Name),
		Subject:       strings.TrimSpace(req.Subject),
		Username:      strings.TrimSpace(req.Username),
		PasswordHash:  string(hash),
		Role:          domain.RoleTeacher,
		IsApproved:    false,
		Email:         req.Email,
		Phone:         req.Phone,
		ClassAssigned: req.ClassAssigned,
	}

	created, err := s.teacherRepo.Create(ctx, teacher)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrUsernameTaken) {
			s.logger.Warn("Register: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Register: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: account id=%d registered, awaiting approval", created.ID)
	return models.FromDomainTeacher(created), nil
}

// Authenticate проверяет имя пользователя и пароль.
// Несуществующий аккаунт и неверный пароль неразличимы для вызывающего
func (s *Service) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.TeacherResponse, error) {
	s.logger.Info("Authenticate: attempt for username=%s", req.Username)

	teacher, err := s.teacherRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			s.logger.Warn("Authenticate: unknown username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Authenticate: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Authenticate: success for account id=%d", teacher.ID)
	return models.FromDomainTeacher(teacher), nil
}

// GetByID возвращает аккаунт по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TeacherResponse, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("GetByID: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTeacher(teacher), nil
}

// List возвращает страницу аккаунтов, упорядоченных по имени
func (s *Service) List(ctx context.Context, page int) (*models.TeacherListResponse, error) {
	total, err := s.teacherRepo.CountAll(ctx)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	params, totalPages := paging.Normalize(page, paging.DefaultPerPage, total)

	teachers, err := s.teacherRepo.List(ctx, params.PerPage, params.Offset())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.TeacherListResponse{
		Teachers:   models.FromDomainTeacherList(teachers),
		Page:       params.Page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// SetApproval включает или выключает право аккаунта подавать заявки.
// Повторная установка того же значения не ошибка
func (s *Service) SetApproval(ctx context.Context, id int64, approved bool) error {
	s.logger.Info("SetApproval: setting approval=%t for account id=%d", approved, id)

	if err := s.teacherRepo.UpdateApproval(ctx, id, approved); err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			s.logger.Warn("SetApproval: account id=%d not found", id)
			return ErrTeacherNotFound
		}
		s.logger.Error("SetApproval: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: SetApproval - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetApproval: account id=%d approval=%t", id, approved)
	return nil
}

// UpdateProfile обновляет изменяемые поля профиля
func (s *Service) UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*models.TeacherResponse, error) {
	s.logger.Info("UpdateProfile: updating account id=%d", id)

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			s.logger.Warn("UpdateProfile: account id=%d not found", id)
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("UpdateProfile: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if req.Subject != nil {
		teacher.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Email != nil {
		teacher.Email = req.Email
	}
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.ClassAssigned != nil {
		teacher.ClassAssigned = req.ClassAssigned
	}

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("UpdateProfile: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: account id=%d updated", id)
	return models.FromDomainTeacher(teacher), nil
}

// Delete удаляет аккаунт вместе со всеми его бронированиями.
// Административные аккаунты защищены от удаления.
// Удаление бронирований и аккаунта выполняется в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting account id=%d", id)

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			s.logger.Warn("Delete: account id=%d not found", id)
			return ErrTeacherNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if teacher.IsAdmin() {
		s.logger.Warn("Delete: account id=%d is an administrator, refusing", id)
		return ErrProtectedAccount
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		removed, err := s.bookingRepo.DeleteByTeacherID(ctx, id)
		if err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		s.logger.Info("Delete: removed %d bookings of account id=%d", removed, id)

		return s.teacherRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("Delete: transaction failed for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: account id=%d deleted", id)
	return nil
}

// EnsureDefaultAdmin создаёт административный аккаунт при первом запуске.
// Повторный запуск ничего не меняет
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.teacherRepo.GetByUsername(ctx, domain.DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, teacherRepo.ErrTeacherNotFound) {
		s.logger.Error("EnsureDefaultAdmin: repository error: %v", err)
		return fmt.Errorf("%w: EnsureDefaultAdmin - repository error: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(domain.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureDefaultAdmin - hash password: %v", ErrInternal, err)
	}

	admin := &domain.Teacher{
		Name:         domain.DefaultAdminName,
		Subject:      "Administration",
		Username:     domain.DefaultAdminUsername,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsApproved:   true,
	}

	created, err := s.teacherRepo.Create(ctx, admin)
	if err != nil {
		// Параллельный запуск мог успеть создать аккаунт первым
		if errors.Is(err, teacherRepo.ErrUsernameTaken) {
			return nil
		}
		s.logger.Error("EnsureDefaultAdmin: failed to create admin: %v", err)
		return fmt.Errorf("%w: EnsureDefaultAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureDefaultAdmin: created administrator account id=%d", created.ID)
	return nil
}

// validateRegisterRequest проверяет обязательные поля регистрации
func validateRegisterRequest(req *models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	return nil
}
