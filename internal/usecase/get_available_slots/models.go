package get_available_slots

import (
	"time"

	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	RoomID int64     // ID помещения
	Date   time.Time // Дата (без времени)
}

// Slot один свободный слот
type Slot struct {
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность сессии в минутах
}

// Response модель ответа со свободными слотами.
// Пустой список - корректный ответ: прошедшая дата или закрытая
// лаборатория не являются ошибкой
type Response struct {
	RoomID int64     // ID помещения
	Date   time.Time // Дата
	Slots  []Slot    // Свободные слоты в порядке времени начала
}
