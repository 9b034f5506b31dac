package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	roomRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/room"
)

// UseCase use case расчёта свободных слотов на дату
type UseCase struct {
	bookingRepo      BookingRepository
	roomRepo         RoomRepository
	settingsProvider SettingsProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	settingsProvider SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		roomRepo:         roomRepo,
		settingsProvider: settingsProvider,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute возвращает свободные слоты помещения на дату.
// Расчёт консультативный: заявка всё равно проходит полную проверку
// допуска в момент создания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование помещения
	if _, err := uc.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 3. Прошедшая дата - слотов нет
	if isDateInPast(req.Date, now) {
		return &Response{RoomID: req.RoomID, Date: req.Date, Slots: []Slot{}}, nil
	}

	// 4. Читаем снимок политики бронирования
	settings, err := uc.settingsProvider.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Закрытая лаборатория - слотов нет
	if settings.LabStatus != domain.LabAvailable {
		uc.logger.Info("GetAvailableSlots: lab status is %s, no slots", settings.LabStatus)
		return &Response{RoomID: req.RoomID, Date: req.Date, Slots: []Slot{}}, nil
	}

	// 6. Генерируем кандидатные слоты дня
	candidates, err := generateCandidates(domain.DefaultDayWindow(), settings.SessionDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 7. Читаем активные бронирования на эту дату и помещение
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		RoomID:     &req.RoomID,
		Date:       &req.Date,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Отбрасываем занятые слоты и слоты под порогом отсечки
	slots := filterBooked(candidates, bookings)
	slots = filterCutoff(slots, req.Date, now, settings.BookingCutoffMinutes)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for room=%d on %s",
		len(slots), len(candidates), req.RoomID, req.Date.Format(domain.DateFormat))

	return &Response{
		RoomID: req.RoomID,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}
