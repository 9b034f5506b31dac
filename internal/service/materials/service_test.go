package materials_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	materialRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/material"
	"github.com/smartlab/SLB-BookingService/internal/service/materials"
	"github.com/smartlab/SLB-BookingService/internal/service/materials/models"
)

// ============================================================================
// Фейк репозитория
// ============================================================================

type fakeMaterialRepo struct {
	requests map[int64]*domain.MaterialRequest
	nextID   int64
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{requests: make(map[int64]*domain.MaterialRequest)}
}

func (r *fakeMaterialRepo) Create(_ context.Context, request *domain.MaterialRequest) (*domain.MaterialRequest, error) {
	r.nextID++
	stored := *request
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.requests[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id int64) (*domain.MaterialRequest, error) {
	m, ok := r.requests[id]
	if !ok {
		return nil, materialRepo.ErrRequestNotFound
	}
	return m, nil
}

func (r *fakeMaterialRepo) matches(m *domain.MaterialRequest, filter domain.MaterialRequestsFilter) bool {
	if filter.NameSearch != "" && !strings.Contains(strings.ToLower(m.FullName), strings.ToLower(filter.NameSearch)) {
		return false
	}
	if filter.Status != nil && m.Status != *filter.Status {
		return false
	}
	return true
}

func (r *fakeMaterialRepo) ListWithFilter(_ context.Context, filter domain.MaterialRequestsFilter, limit, offset int) ([]*domain.MaterialRequest, error) {
	var out []*domain.MaterialRequest
	for id := int64(1); id <= r.nextID; id++ {
		m, ok := r.requests[id]
		if !ok || !r.matches(m, filter) {
			continue
		}
		out = append(out, m)
	}
	if offset > len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMaterialRepo) CountWithFilter(ctx context.Context, filter domain.MaterialRequestsFilter) (int64, error) {
	all, err := r.ListWithFilter(ctx, filter, int(r.nextID)+1, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func (r *fakeMaterialRepo) UpdateStatus(_ context.Context, id int64, status domain.MaterialStatus, decidedAt time.Time) error {
	m, ok := r.requests[id]
	if !ok {
		return materialRepo.ErrRequestNotFound
	}
	m.Status = status
	m.DecidedAt = &decidedAt
	return nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T) (*materials.Service, *fakeMaterialRepo) {
	t.Helper()
	repo := newFakeMaterialRepo()
	return materials.NewService(repo, &nopLogger{}), repo
}

func validSubmit() *models.SubmitRequest {
	return &models.SubmitRequest{
		FullName:     "Иван Сидоров",
		Gender:       "male",
		PhoneNumber:  "+7 900 000-00-00",
		MaterialName: "Микроскоп",
		BorrowedDate: "2026-09-20",
		ReturnedDate: "2026-09-25",
		LetterFile:   "letter-123.pdf",
	}
}

// ============================================================================
// Подача заявки
// ============================================================================

func TestSubmit(t *testing.T) {
	svc, repo := newTestService(t)

	resp, err := svc.Submit(context.Background(), validSubmit())

	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "2026-09-20", resp.BorrowedDate)
	assert.Equal(t, "2026-09-25", resp.ReturnedDate)
	assert.Nil(t, resp.DecidedAt)
	assert.Contains(t, repo.requests, resp.ID)
}

func TestSubmit_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*models.SubmitRequest)
	}{
		{name: "empty full name", mutate: func(r *models.SubmitRequest) { r.FullName = "  " }},
		{name: "empty material name", mutate: func(r *models.SubmitRequest) { r.MaterialName = "" }},
		{name: "missing letter", mutate: func(r *models.SubmitRequest) { r.LetterFile = "" }},
		{name: "malformed borrowed date", mutate: func(r *models.SubmitRequest) { r.BorrowedDate = "20.09.2026" }},
		{name: "malformed returned date", mutate: func(r *models.SubmitRequest) { r.ReturnedDate = "soon" }},
		{name: "returned before borrowed", mutate: func(r *models.SubmitRequest) { r.ReturnedDate = "2026-09-19" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmit()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, materials.ErrInvalidInput)
		})
	}
}

func TestSubmit_SameDayReturnAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	req := validSubmit()
	req.ReturnedDate = req.BorrowedDate

	_, err := svc.Submit(context.Background(), req)
	assert.NoError(t, err)
}

// ============================================================================
// Решения по заявкам
// ============================================================================

func TestApproveAndReject(t *testing.T) {
	svc, repo := newTestService(t)

	first, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), first.ID))
	assert.Equal(t, domain.MaterialApproved, repo.requests[first.ID].Status)
	assert.NotNil(t, repo.requests[first.ID].DecidedAt)

	require.NoError(t, svc.Reject(context.Background(), second.ID))
	assert.Equal(t, domain.MaterialRejected, repo.requests[second.ID].Status)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), created.ID))

	// Решение окончательное: ни повторное подтверждение, ни отклонение
	err = svc.Approve(context.Background(), created.ID)
	assert.ErrorIs(t, err, materials.ErrAlreadyDecided)
	err = svc.Reject(context.Background(), created.ID)
	assert.ErrorIs(t, err, materials.ErrAlreadyDecided)
}

func TestDecide_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Approve(context.Background(), 999)
	assert.ErrorIs(t, err, materials.ErrRequestNotFound)
}

// ============================================================================
// Список
// ============================================================================

func TestList(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 7; i++ {
		req := validSubmit()
		if i%2 == 0 {
			req.FullName = "Анна Петрова"
		}
		created, err := svc.Submit(context.Background(), req)
		require.NoError(t, err)
		if i == 0 {
			require.NoError(t, svc.Approve(context.Background(), created.ID))
		}
	}

	// Первая страница без фильтров
	resp, err := svc.List(context.Background(), &models.ListRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Requests, 5)
	assert.Equal(t, int64(7), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)

	// Поиск по имени без учёта регистра
	resp, err = svc.List(context.Background(), &models.ListRequest{Page: 1, NameSearch: "анна"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.TotalCount)

	// Фильтр по статусу
	status := "Approved"
	resp, err = svc.List(context.Background(), &models.ListRequest{Page: 1, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)

	// Неизвестный статус
	bad := "Lost"
	_, err = svc.List(context.Background(), &models.ListRequest{Page: 1, Status: &bad})
	assert.ErrorIs(t, err, materials.ErrInvalidStatus)
}
