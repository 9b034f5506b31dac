package teacher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/pkg/dbmetrics"
	"github.com/smartlab/SLB-BookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения unique constraint
const pqUniqueViolation = "23505"

var teacherColumns = []string{
	"id",
	"name",
	"subject",
	"username",
	"password_hash",
	"role",
	"is_approved",
	"email",
	"phone",
	"class_assigned",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с аккаунтами учителей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аккаунтов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый аккаунт
// Возвращает ErrUsernameTaken при конфликте по username
func (r *Repository) Create(ctx context.Context, teacher *domain.Teacher) (*domain.Teacher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("teachers").
		Columns(
			"name",
			"subject",
			"username",
			"password_hash",
			"role",
			"is_approved",
			"email",
			"phone",
			"class_assigned",
		).
		Values(
			teacher.Name,
			teacher.Subject,
			teacher.Username,
			teacher.PasswordHash,
			teacher.Role,
			teacher.IsApproved,
			teacher.Email,
			teacher.Phone,
			teacher.ClassAssigned,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&teacher.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	teacher.CreatedAt = createdAt.Time
	teacher.UpdatedAt = updatedAt.Time

	return teacher, nil
}

// GetByID получает аккаунт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByUsername получает аккаунт по логину
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, "GetByUsername")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Teacher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(teacherColumns...).
		From("teachers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	teacher, err := r.scanTeacher(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTeacherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan teacher: %v", ErrScanRow, op, err)
	}

	return teacher, nil
}

// List получает страницу аккаунтов, отсортированных по имени
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*domain.Teacher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(teacherColumns...).
		From("teachers").
		OrderBy("name ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teachers := make([]*domain.Teacher, 0)
	for rows.Next() {
		teacher, err := r.scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return teachers, nil
}

// CountAll возвращает общее количество аккаунтов
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("teachers").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountAll - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountAll - scan count: %v", ErrScanRow, err)
	}

	return total, nil
}

// UpdateApproval выставляет флаг одобрения аккаунта (идемпотентно)
func (r *Repository) UpdateApproval(ctx context.Context, id int64, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("teachers").
		Set("is_approved", approved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateApproval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateApproval - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateApproval - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeacherNotFound
	}

	return nil
}

// Update обновляет профиль аккаунта
func (r *Repository) Update(ctx context.Context, teacher *domain.Teacher) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("teachers").
		Set("name", teacher.Name).
		Set("subject", teacher.Subject).
		Set("username", teacher.Username).
		Set("role", teacher.Role).
		Set("email", teacher.Email).
		Set("phone", teacher.Phone).
		Set("class_assigned", teacher.ClassAssigned).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeacherNotFound
	}

	return nil
}

// Delete удаляет аккаунт.
// Вызывается внутри транзакции каскадного удаления вместе с
// удалением бронирований аккаунта
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeacherNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTeacher сканирует одну строку в аккаунт
func (r *Repository) scanTeacher(row rowScanner) (*domain.Teacher, error) {
	var teacher domain.Teacher
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Subject,
		&teacher.Username,
		&teacher.PasswordHash,
		&teacher.Role,
		&teacher.IsApproved,
		&teacher.Email,
		&teacher.Phone,
		&teacher.ClassAssigned,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	teacher.CreatedAt = createdAt.Time
	teacher.UpdatedAt = updatedAt.Time

	return &teacher, nil
}
