package domain

import (
	"time"

	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusApproved  BookingStatus = "Approved"
	StatusDenied    BookingStatus = "Denied"
	StatusCancelled BookingStatus = "Cancelled"
)

// AllStatuses lists every booking status in report order
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusDenied,
	StatusCancelled,
}

// ActiveStatuses are the statuses that occupy a slot.
// Denied and Cancelled bookings do not block the room.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}

// Booking represents a single room reservation request
type Booking struct {
	ID          int64
	TeacherID   int64
	RoomID      int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Equipment   *string
	Status      BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanTransitionTo reports whether the status change is legal.
// Pending may move to Approved, Denied or Cancelled; Approved only to
// Cancelled. Denied and Cancelled are terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return target == StatusApproved || target == StatusDenied || target == StatusCancelled
	case StatusApproved:
		return target == StatusCancelled
	default:
		return false
	}
}

// Overlaps reports whether [b.StartTime, b.EndTime) intersects [start, end).
// Intervals are half-open: bookings that merely touch do not overlap.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && start.IsBefore(b.EndTime)
}

// BookingsFilter narrows booking queries
type BookingsFilter struct {
	RoomID     *int64
	TeacherID  *int64
	Date       *time.Time
	Status     *BookingStatus
	ActiveOnly bool // Only Pending/Approved when true and Status is nil
}

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}
