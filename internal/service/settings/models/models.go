package models

import "github.com/smartlab/SLB-BookingService/internal/domain"

// UpdateSettingsRequest запрос на обновление политики бронирования.
// Указываются только изменяемые поля
type UpdateSettingsRequest struct {
	SessionDurationMinutes *int    `json:"sessionDurationMinutes,omitempty"`
	LabStatus              *string `json:"labStatus,omitempty"`
	BookingCutoffMinutes   *int    `json:"bookingCutoffMinutes,omitempty"`
}

// SettingsResponse текущий снимок политики бронирования
type SettingsResponse struct {
	SessionDurationMinutes int    `json:"sessionDurationMinutes"`
	LabStatus              string `json:"labStatus"`
	BookingCutoffMinutes   int    `json:"bookingCutoffMinutes"`
}

// FromDomainSettings конвертирует domain.Settings в response-модель
func FromDomainSettings(s domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		SessionDurationMinutes: s.SessionDurationMinutes,
		LabStatus:              string(s.LabStatus),
		BookingCutoffMinutes:   s.BookingCutoffMinutes,
	}
}
