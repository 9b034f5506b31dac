package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	bookingRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/booking"
	teacherRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/teacher"
	"github.com/smartlab/SLB-BookingService/internal/service/bookings/models"
	"github.com/smartlab/SLB-BookingService/pkg/paging"
)

// Service сервис жизненного цикла бронирований: смена статусов,
// списки и удаление. Создание заявок живёт в usecase создания
type Service struct {
	bookingRepo BookingRepository
	teacherRepo TeacherRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	teacherRepo TeacherRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// GetByID возвращает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBooking(booking), nil
}

// GetTeacherBookings возвращает все заявки учителя в хронологическом порядке
func (s *Service) GetTeacherBookings(ctx context.Context, teacherID int64) ([]*models.BookingResponse, error) {
	s.logger.Info("GetTeacherBookings: fetching bookings for teacher=%d", teacherID)

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		TeacherID: &teacherID,
	})
	if err != nil {
		s.logger.Error("GetTeacherBookings: repository error for teacher=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: GetTeacherBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTeacherBookings: fetched %d bookings for teacher=%d", len(bookings), teacherID)
	return models.FromDomainBookingList(bookings), nil
}

// List возвращает страницу бронирований, свежие даты первыми.
// При фильтре по статусу страница считается по отфильтрованному списку
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req.Status != nil {
		return s.listByStatus(ctx, req.Page, *req.Status)
	}

	total, err := s.bookingRepo.CountAll(ctx)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	params, totalPages := paging.Normalize(req.Page, paging.DefaultPerPage, total)

	bookings, err := s.bookingRepo.ListPage(ctx, params.PerPage, params.Offset())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.BookingListResponse{
		Bookings:   models.FromDomainBookingList(bookings),
		Page:       params.Page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// listByStatus строит страницу по выборке одного статуса
func (s *Service) listByStatus(ctx context.Context, page int, rawStatus string) (*models.BookingListResponse, error) {
	status, valid := domain.ParseBookingStatus(rawStatus)
	if !valid {
		s.logger.Warn("List: invalid status filter %q", rawStatus)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{Status: &status})
	if err != nil {
		s.logger.Error("List: repository error for status=%s: %v", status, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total := int64(len(bookings))
	params, totalPages := paging.Normalize(page, paging.DefaultPerPage, total)

	start := params.Offset()
	end := start + params.PerPage
	if start > len(bookings) {
		start = len(bookings)
	}
	if end > len(bookings) {
		end = len(bookings)
	}

	return &models.BookingListResponse{
		Bookings:   models.FromDomainBookingList(bookings[start:end]),
		Page:       params.Page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// SetStatus меняет статус бронирования с проверкой допустимости перехода
// и прав инициатора. Подтверждать и отклонять может только администратор;
// отменять - владелец заявки или администратор
func (s *Service) SetStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("SetStatus: booking id=%d -> %s by actor=%d", bookingID, req.Status, req.ActorID)

	target, valid := domain.ParseBookingStatus(req.Status)
	if !valid {
		s.logger.Warn("SetStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SetStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("SetStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	actor, err := s.teacherRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			s.logger.Warn("SetStatus: actor id=%d not found", req.ActorID)
			return ErrTeacherNotFound
		}
		s.logger.Error("SetStatus: repository error for actor id=%d: %v", req.ActorID, err)
		return fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkStatusAccess(booking, actor, target); err != nil {
		s.logger.Warn("SetStatus: actor=%d denied %s on booking id=%d", req.ActorID, target, bookingID)
		return err
	}

	if !booking.CanTransitionTo(target) {
		s.logger.Warn("SetStatus: illegal transition %s -> %s for booking id=%d",
			booking.Status, target, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, target)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("SetStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetStatus: booking id=%d is now %s", bookingID, target)
	return nil
}

// Delete удаляет бронирование. Доступно только администратору
func (s *Service) Delete(ctx context.Context, bookingID, actorID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by actor=%d", bookingID, actorID)

	actor, err := s.teacherRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("Delete: repository error for actor id=%d: %v", actorID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if !actor.IsAdmin() {
		s.logger.Warn("Delete: actor=%d is not an administrator", actorID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", bookingID)
	return nil
}

// checkStatusAccess проверяет права инициатора на целевой статус
func (s *Service) checkStatusAccess(booking *domain.Booking, actor *domain.Teacher, target domain.BookingStatus) error {
	switch target {
	case domain.StatusApproved, domain.StatusDenied:
		if !actor.IsAdmin() {
			return ErrAccessDenied
		}
	case domain.StatusCancelled:
		if booking.TeacherID != actor.ID && !actor.IsAdmin() {
			return ErrAccessDenied
		}
	default:
		// Возврат в Pending запрещён для всех
		return fmt.Errorf("%w: cannot move a booking back to %s", ErrIllegalTransition, target)
	}
	return nil
}
