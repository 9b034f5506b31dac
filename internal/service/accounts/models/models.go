package models

import (
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию аккаунта учителя
type RegisterRequest struct {
	Name          string  `json:"name"`
	Subject       string  `json:"subject"`
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	ClassAssigned *string `json:"classAssigned,omitempty"`
}

// LoginRequest запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest запрос на обновление профиля.
// Указываются только изменяемые поля
type UpdateProfileRequest struct {
	Name          *string `json:"name,omitempty"`
	Subject       *string `json:"subject,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	ClassAssigned *string `json:"classAssigned,omitempty"`
}

// Response модели

// TeacherResponse информация об аккаунте (без секретов)
type TeacherResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Subject       string    `json:"subject"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	IsApproved    bool      `json:"isApproved"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	ClassAssigned *string   `json:"classAssigned,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TeacherListResponse страница списка аккаунтов
type TeacherListResponse struct {
	Teachers   []*TeacherResponse `json:"teachers"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	TotalCount int64              `json:"totalCount"`
}

// FromDomainTeacher конвертирует domain.Teacher в response-модель
func FromDomainTeacher(t *domain.Teacher) *TeacherResponse {
	return &TeacherResponse{
		ID:            t.ID,
		Name:          t.Name,
		Subject:       t.Subject,
		Username:      t.Username,
		Role:          string(t.Role),
		IsApproved:    t.IsApproved,
		Email:         t.Email,
		Phone:         t.Phone,
		ClassAssigned: t.ClassAssigned,
		CreatedAt:     t.CreatedAt,
	}
}

// FromDomainTeacherList конвертирует список domain.Teacher в response-модели
func FromDomainTeacherList(teachers []*domain.Teacher) []*TeacherResponse {
	out := make([]*TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, FromDomainTeacher(t))
	}
	return out
}
