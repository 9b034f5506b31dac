package create_booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrTeacherNotFound возвращается, когда аккаунт не найден
	ErrTeacherNotFound = errors.New("create_booking: teacher not found")

	// ErrTeacherNotApproved возвращается, когда аккаунт ещё не подтверждён администратором
	ErrTeacherNotApproved = errors.New("create_booking: teacher is not approved")

	// ErrRoomNotFound возвращается, когда помещение не найдено
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrLabUnavailable возвращается, когда лаборатория закрыта для бронирования
	ErrLabUnavailable = errors.New("create_booking: lab is not available")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrOutsideOperatingHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("create_booking: slot is outside operating hours")

	// ErrTooLateToBook возвращается при нарушении порога отсечки бронирования
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotConflict возвращается, когда слот пересекается с активным бронированием
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotConflictError несёт ID бронирования, занявшего слот.
// Раскрывается через errors.Is(err, ErrSlotConflict)
type SlotConflictError struct {
	ConflictingBookingID int64
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v (booking id=%d)", ErrSlotConflict, e.ConflictingBookingID)
}

// Is поддерживает сопоставление с ErrSlotConflict
func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// serializationFailureCode код ошибки Postgres при откате сериализуемой транзакции
const serializationFailureCode = "40001"

// isSerializationFailure распознаёт откат по конфликту сериализации (SQLSTATE 40001)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == serializationFailureCode
}
