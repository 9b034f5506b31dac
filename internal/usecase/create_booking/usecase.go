package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	roomRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/room"
	teacherRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/teacher"
)

// UseCase use case создания бронирования: полный цикл допуска заявки
type UseCase struct {
	bookingRepo      BookingRepository
	teacherRepo      TeacherRepository
	roomRepo         RoomRepository
	settingsProvider SettingsProvider
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	teacherRepo TeacherRepository,
	roomRepo RoomRepository,
	settingsProvider SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		teacherRepo:      teacherRepo,
		roomRepo:         roomRepo,
		settingsProvider: settingsProvider,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// чтобы две конкурирующие заявки на один слот не прошли обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: teacher=%d, room=%d, date=%s, time=%s",
		req.TeacherID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем аккаунт учителя и право подавать заявки
	teacher, err := uc.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			uc.logger.Warn("CreateBooking: teacher id=%d not found", req.TeacherID)
			return nil, ErrTeacherNotFound
		}
		uc.logger.Error("CreateBooking: failed to get teacher id=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to get teacher: %v", ErrInternal, err)
	}

	if !teacher.CanSubmitBookings() {
		uc.logger.Warn("CreateBooking: teacher id=%d is not approved", req.TeacherID)
		return nil, ErrTeacherNotApproved
	}

	// 4. Проверяем существование помещения
	if _, err := uc.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 5. Проверяем дату до открытия транзакции
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Читаем снимок политики бронирования
		settings, err := uc.settingsProvider.Snapshot(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 6.2. Лаборатория должна быть открыта для бронирования
		if settings.LabStatus != domain.LabAvailable {
			uc.logger.Warn("CreateBooking: lab status is %s", settings.LabStatus)
			return fmt.Errorf("%w: current status is %s", ErrLabUnavailable, settings.LabStatus)
		}

		// 6.3. Вычисляем конец слота по длительности сессии
		endTime, err := req.StartTime.AddMinutes(settings.SessionDurationMinutes)
		if err != nil {
			uc.logger.Warn("CreateBooking: slot crosses midnight: %v", err)
			return fmt.Errorf("%w: session does not fit into the day", ErrOutsideOperatingHours)
		}

		// 6.4. Слот должен лежать в рабочих часах
		if err := validateOperatingWindow(req.StartTime, endTime, domain.DefaultDayWindow()); err != nil {
			uc.logger.Warn("CreateBooking: operating window check failed: %v", err)
			return err
		}

		// 6.5. Проверяем порог отсечки для бронирований на сегодня
		if err := validateCutoff(req.Date, req.StartTime, now, settings.BookingCutoffMinutes); err != nil {
			uc.logger.Warn("CreateBooking: cutoff check failed: %v", err)
			return err
		}

		// 6.6. Читаем активные бронирования на эту дату и помещение с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			RoomID:     &req.RoomID,
			Date:       &req.Date,
			ActiveOnly: true,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.7. Проверяем пересечение с занятыми слотами
		if conflict := findConflictingBooking(req.StartTime, endTime, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s conflicts with booking id=%d",
				req.StartTime, endTime, conflict.ID)
			return &SlotConflictError{ConflictingBookingID: conflict.ID}
		}

		// 6.8. Создаем заявку со статусом Pending
		booking := &domain.Booking{
			TeacherID:   req.TeacherID,
			RoomID:      req.RoomID,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			EndTime:     endTime,
			Equipment:   req.Equipment,
			Status:      domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Транзакция, проигравшая сериализацию, трактуется как конфликт слота:
		// победившая заявка уже изменила условия допуска
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure, reporting conflict: %v", err)
			return nil, fmt.Errorf("%w: concurrent submission", ErrSlotConflict)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	duration, err := result.StartTime.MinutesUntil(result.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		TeacherID:       result.TeacherID,
		RoomID:          result.RoomID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: duration,
		Equipment:       result.Equipment,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
