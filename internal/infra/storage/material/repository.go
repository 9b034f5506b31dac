package material

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/pkg/dbmetrics"
	"github.com/smartlab/SLB-BookingService/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"full_name",
	"gender",
	"phone_number",
	"class_teacher",
	"material_name",
	"borrowed_date",
	"returned_date",
	"reason",
	"letter_file",
	"status",
	"decided_at",
	"created_at",
}

// Repository репозиторий для работы с заявками на материалы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на материалы
func (r *Repository) Create(ctx context.Context, request *domain.MaterialRequest) (*domain.MaterialRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("material_requests").
		Columns(
			"full_name",
			"gender",
			"phone_number",
			"class_teacher",
			"material_name",
			"borrowed_date",
			"returned_date",
			"reason",
			"letter_file",
			"status",
		).
		Values(
			request.FullName,
			request.Gender,
			request.PhoneNumber,
			request.ClassTeacher,
			request.MaterialName,
			request.BorrowedDate,
			request.ReturnedDate,
			request.Reason,
			request.LetterFile,
			request.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&request.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time

	return request, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MaterialRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("material_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// withFilter применяет фильтры поиска к builder'у
func withFilter(builder squirrel.SelectBuilder, filter domain.MaterialRequestsFilter) squirrel.SelectBuilder {
	if filter.NameSearch != "" {
		builder = builder.Where(squirrel.ILike{"full_name": "%" + filter.NameSearch + "%"})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	return builder
}

// ListWithFilter получает страницу заявок с фильтрацией по имени и статусу.
// Сортировка: новые заявки первыми
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.MaterialRequestsFilter, limit, offset int) ([]*domain.MaterialRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := withFilter(psqlbuilder.Select(requestColumns...).From("material_requests"), filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.MaterialRequest, 0)
	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// CountWithFilter возвращает количество заявок, удовлетворяющих фильтру
func (r *Repository) CountWithFilter(ctx context.Context, filter domain.MaterialRequestsFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := withFilter(psqlbuilder.Select("COUNT(*)").From("material_requests"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - scan count: %v", ErrScanRow, err)
	}

	return total, nil
}

// UpdateStatus обновляет статус заявки с отметкой времени решения
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.MaterialStatus, decidedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("material_requests").
		Set("status", status).
		Set("decided_at", decidedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует одну строку в заявку
func (r *Repository) scanRequest(row rowScanner) (*domain.MaterialRequest, error) {
	var request domain.MaterialRequest
	var decidedAt, createdAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.FullName,
		&request.Gender,
		&request.PhoneNumber,
		&request.ClassTeacher,
		&request.MaterialName,
		&request.BorrowedDate,
		&request.ReturnedDate,
		&request.Reason,
		&request.LetterFile,
		&request.Status,
		&decidedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if decidedAt.Valid {
		request.DecidedAt = &decidedAt.Time
	}
	request.CreatedAt = createdAt.Time

	return &request, nil
}
