package domain

import "github.com/smartlab/SLB-BookingService/pkg/types"

// AvailableSlot represents a free start time for a room on a date
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// DayWindow bounds the start times a room accepts on a given day
type DayWindow struct {
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// DefaultDayWindow returns the standard lab operating window
func DefaultDayWindow() DayWindow {
	return DayWindow{
		OpenTime:  types.TimeString(DefaultOpenTime),
		CloseTime: types.TimeString(DefaultCloseTime),
	}
}
