package create_booking

import (
	"time"

	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TeacherID int64            // ID аккаунта учителя
	RoomID    int64            // ID помещения
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "09:00")
	Equipment *string          // Запрошенное оборудование (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	TeacherID       int64            // ID аккаунта учителя
	RoomID          int64            // ID помещения
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность сессии в минутах
	Equipment       *string          // Запрошенное оборудование
	Status          string           // Статус бронирования (всегда Pending)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
