package report

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/pkg/dbmetrics"
	"github.com/smartlab/SLB-BookingService/pkg/psqlbuilder"
)

// Repository read-only репозиторий агрегатов по журналу бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// StatusCounts возвращает количество бронирований по каждому статусу
// (только статусы, реально встречающиеся в журнале; нули добавляет сервис)
func (r *Repository) StatusCounts(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: StatusCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: StatusCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int64)
	for rows.Next() {
		var status domain.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: StatusCounts - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: StatusCounts - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// TeacherRanking возвращает учителей по количеству одобренных бронирований.
// Порядок: count DESC, при равенстве - имя по алфавиту
func (r *Repository) TeacherRanking(ctx context.Context) ([]domain.RankingEntry, error) {
	return r.ranking(ctx, "t.name", "TeacherRanking")
}

// SubjectRanking возвращает предметы по количеству одобренных бронирований
func (r *Repository) SubjectRanking(ctx context.Context) ([]domain.RankingEntry, error) {
	return r.ranking(ctx, "t.subject", "SubjectRanking")
}

func (r *Repository) ranking(ctx context.Context, groupColumn, op string) ([]domain.RankingEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(groupColumn, "COUNT(b.id) AS cnt").
		From("bookings b").
		Join("teachers t ON b.teacher_id = t.id").
		Where(squirrel.Eq{"b.status": domain.StatusApproved}).
		GroupBy(groupColumn).
		OrderBy("cnt DESC", groupColumn+" ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]domain.RankingEntry, 0)
	for rows.Next() {
		var entry domain.RankingEntry
		if err := rows.Scan(&entry.Name, &entry.Count); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return entries, nil
}

// TeacherDirectory возвращает контакты учителей с количеством их бронирований
func (r *Repository) TeacherDirectory(ctx context.Context) ([]domain.TeacherDirectoryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("t.name", "t.email", "t.phone", "COUNT(b.id)").
		From("teachers t").
		LeftJoin("bookings b ON b.teacher_id = t.id").
		GroupBy("t.id", "t.name", "t.email", "t.phone").
		OrderBy("t.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TeacherDirectory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TeacherDirectory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.TeacherDirectoryEntry, 0)
	for rows.Next() {
		var entry domain.TeacherDirectoryEntry
		if err := rows.Scan(&entry.Name, &entry.Email, &entry.Phone, &entry.Bookings); err != nil {
			return nil, fmt.Errorf("%w: TeacherDirectory - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TeacherDirectory - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
