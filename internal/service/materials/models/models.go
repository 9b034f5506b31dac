package models

import (
	"time"

	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// Request модели

// SubmitRequest заявка на выдачу материалов
type SubmitRequest struct {
	FullName     string  `json:"fullName"`
	Gender       string  `json:"gender"`
	PhoneNumber  string  `json:"phoneNumber"`
	ClassTeacher *string `json:"classTeacher,omitempty"`
	MaterialName string  `json:"materialName"`
	BorrowedDate string  `json:"borrowedDate"`
	ReturnedDate string  `json:"returnedDate"`
	Reason       *string `json:"reason,omitempty"`
	LetterFile   string  `json:"letterFile"`
}

// ListRequest запрос списка заявок с фильтром и страницей
type ListRequest struct {
	Page       int     `json:"page"`
	NameSearch string  `json:"nameSearch,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// MaterialRequestResponse информация о заявке на материалы
type MaterialRequestResponse struct {
	ID           int64      `json:"id"`
	FullName     string     `json:"fullName"`
	Gender       string     `json:"gender"`
	PhoneNumber  string     `json:"phoneNumber"`
	ClassTeacher *string    `json:"classTeacher,omitempty"`
	MaterialName string     `json:"materialName"`
	BorrowedDate string     `json:"borrowedDate"`
	ReturnedDate string     `json:"returnedDate"`
	Reason       *string    `json:"reason,omitempty"`
	LetterFile   string     `json:"letterFile"`
	Status       string     `json:"status"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// MaterialRequestListResponse страница списка заявок
type MaterialRequestListResponse struct {
	Requests   []*MaterialRequestResponse `json:"requests"`
	Page       int                        `json:"page"`
	TotalPages int                        `json:"totalPages"`
	TotalCount int64                      `json:"totalCount"`
}

// FromDomainRequest конвертирует domain.MaterialRequest в response-модель
func FromDomainRequest(m *domain.MaterialRequest) *MaterialRequestResponse {
	return &MaterialRequestResponse{
		ID:           m.ID,
		FullName:     m.FullName,
		Gender:       m.Gender,
		PhoneNumber:  m.PhoneNumber,
		ClassTeacher: m.ClassTeacher,
		MaterialName: m.MaterialName,
		BorrowedDate: m.BorrowedDate.Format(domain.DateFormat),
		ReturnedDate: m.ReturnedDate.Format(domain.DateFormat),
		Reason:       m.Reason,
		LetterFile:   m.LetterFile,
		Status:       string(m.Status),
		DecidedAt:    m.DecidedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomainRequestList конвертирует список заявок в response-модели
func FromDomainRequestList(requests []*domain.MaterialRequest) []*MaterialRequestResponse {
	out := make([]*MaterialRequestResponse, 0, len(requests))
	for _, m := range requests {
		out = append(out, FromDomainRequest(m))
	}
	return out
}
