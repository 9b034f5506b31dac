package models

import (
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	ActorID int64  `json:"actorId"`
	Status  string `json:"status"`
}

// ListBookingsRequest запрос на постраничный список бронирований
type ListBookingsRequest struct {
	Page   int     `json:"page"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse информация о бронировании
type BookingResponse struct {
	ID          int64     `json:"id"`
	TeacherID   int64     `json:"teacherId"`
	RoomID      int64     `json:"roomId"`
	BookingDate string    `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Equipment   *string   `json:"equipment,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse страница списка бронирований
type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	TotalCount int64              `json:"totalCount"`
}

// FromDomainBooking конвертирует domain.Booking в response-модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		TeacherID:   b.TeacherID,
		RoomID:      b.RoomID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Equipment:   b.Equipment,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking в response-модели
func FromDomainBookingList(bookings []*domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b))
	}
	return out
}
