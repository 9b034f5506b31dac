package models

import "github.com/smartlab/SLB-BookingService/internal/domain"

// RankingRow одна строка рейтинга по подтверждённым бронированиям
type RankingRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DirectoryRow одна строка справочника контактов учителей
type DirectoryRow struct {
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Bookings int64   `json:"bookings"`
}

// ReportResponse сводный отчёт для административной панели
type ReportResponse struct {
	StatusSummary  map[string]int64 `json:"statusSummary"`
	TeacherRanking []RankingRow     `json:"teacherRanking"`
	SubjectRanking []RankingRow     `json:"subjectRanking"`
	Directory      []DirectoryRow   `json:"directory"`
}

// FromRankingEntries конвертирует domain-рейтинг в response-модель
func FromRankingEntries(entries []domain.RankingEntry) []RankingRow {
	out := make([]RankingRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, RankingRow{Name: e.Name, Count: e.Count})
	}
	return out
}

// FromDirectoryEntries конвертирует domain-справочник в response-модель
func FromDirectoryEntries(entries []domain.TeacherDirectoryEntry) []DirectoryRow {
	out := make([]DirectoryRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirectoryRow{Name: e.Name, Email: e.Email, Phone: e.Phone, Bookings: e.Bookings})
	}
	return out
}
