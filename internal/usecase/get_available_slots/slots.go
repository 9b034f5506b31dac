package get_available_slots

import (
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// generateCandidates генерирует все кандидатные слоты дня: от открытия
// до закрытия с фиксированным шагом, равным длительности сессии.
// Слот, не помещающийся до закрытия, отбрасывается
func generateCandidates(window domain.DayWindow, durationMinutes int) ([]Slot, error) {
	candidates := make([]Slot, 0)
	current := window.OpenTime

	for current.IsBefore(window.CloseTime) {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот ушёл за полночь
			break
		}
		if end.IsAfter(window.CloseTime) {
			break
		}

		candidates = append(candidates, Slot{
			StartTime:       current,
			EndTime:         end,
			DurationMinutes: durationMinutes,
		})

		current = end
	}

	return candidates, nil
}

// filterBooked отбрасывает слоты, пересекающиеся с активными
// бронированиями. Интервалы полуоткрытые: граничащие слоты остаются
func filterBooked(candidates []Slot, bookings []*domain.Booking) []Slot {
	free := make([]Slot, 0, len(candidates))

	for _, slot := range candidates {
		conflict := false
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if booking.Overlaps(slot.StartTime, slot.EndTime) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, slot)
		}
	}

	return free
}

// filterCutoff для сегодняшней даты отбрасывает слоты, начинающиеся
// раньше, чем через cutoffMinutes от текущего времени
func filterCutoff(candidates []Slot, date time.Time, now time.Time, cutoffMinutes int) []Slot {
	if !isSameDay(date, now) {
		return candidates
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(cutoffMinutes)
	if err != nil {
		// Порог ушёл за полночь - сегодня слотов больше нет
		return []Slot{}
	}

	allowed := make([]Slot, 0, len(candidates))
	for _, slot := range candidates {
		if !slot.StartTime.IsBefore(minAllowed) {
			allowed = append(allowed, slot)
		}
	}

	return allowed
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
