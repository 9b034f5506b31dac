package accounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	teacherRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/teacher"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts"
	"github.com/smartlab/SLB-BookingService/internal/service/accounts/models"
)

// ============================================================================
// Фейки репозиториев
// ============================================================================

type fakeTeacherRepo struct {
	teachers map[int64]*domain.Teacher
	nextID   int64
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: make(map[int64]*domain.Teacher)}
}

func (r *fakeTeacherRepo) Create(_ context.Context, teacher *domain.Teacher) (*domain.Teacher, error) {
	for _, t := range r.teachers {
		if t.Username == teacher.Username {
			return nil, teacherRepo.ErrUsernameTaken
		}
	}
	r.nextID++
	stored := *teacher
	stored.ID = r.nextID
	r.teachers[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*domain.Teacher, error) {
	t, ok := r.teachers[id]
	if !ok {
		return nil, teacherRepo.ErrTeacherNotFound
	}
	return t, nil
}

func (r *fakeTeacherRepo) GetByUsername(_ context.Context, username string) (*domain.Teacher, error) {
	for _, t := range r.teachers {
		if t.Username == username {
			return t, nil
		}
	}
	return nil, teacherRepo.ErrTeacherNotFound
}

func (r *fakeTeacherRepo) List(_ context.Context, limit, offset int) ([]*domain.Teacher, error) {
	var out []*domain.Teacher
	for id := int64(1); id <= r.nextID && len(out) < limit+offset; id++ {
		if t, ok := r.teachers[id]; ok {
			out = append(out, t)
		}
	}
	if offset > len(out) {
		return nil, nil
	}
	return out[offset:], nil
}

func (r *fakeTeacherRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.teachers)), nil
}

func (r *fakeTeacherRepo) UpdateApproval(_ context.Context, id int64, approved bool) error {
	t, ok := r.teachers[id]
	if !ok {
		return teacherRepo.ErrTeacherNotFound
	}
	t.IsApproved = approved
	return nil
}

func (r *fakeTeacherRepo) Update(_ context.Context, teacher *domain.Teacher) error {
	if _, ok := r.teachers[teacher.ID]; !ok {
		return teacherRepo.ErrTeacherNotFound
	}
	r.teachers[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.teachers[id]; !ok {
		return teacherRepo.ErrTeacherNotFound
	}
	delete(r.teachers, id)
	return nil
}

type fakeBookingRepo struct {
	deletedFor []int64
}

func (r *fakeBookingRepo) DeleteByTeacherID(_ context.Context, teacherID int64) (int64, error) {
	r.deletedFor = append(r.deletedFor, teacherID)
	return 2, nil
}

type passThroughTxManager struct{}

func (m *passThroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *passThroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *passThroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T) (*accounts.Service, *fakeTeacherRepo, *fakeBookingRepo) {
	t.Helper()
	teachers := newFakeTeacherRepo()
	bookings := &fakeBookingRepo{}
	svc := accounts.NewService(teachers, bookings, &passThroughTxManager{}, &nopLogger{})
	return svc, teachers, bookings
}

// ============================================================================
// Регистрация и аутентификация
// ============================================================================

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Анна Петрова",
		Subject:  "Физика",
		Username: "apetrova",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "apetrova", resp.Username)
	assert.Equal(t, string(domain.RoleTeacher), resp.Role)
	assert.False(t, resp.IsApproved, "new accounts must await approval")

	// Пароль хранится только в виде bcrypt-хеша
	stored := repo.teachers[resp.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name string
		req  *models.RegisterRequest
	}{
		{name: "empty name", req: &models.RegisterRequest{Username: "u1", Password: "secret123"}},
		{name: "blank name", req: &models.RegisterRequest{Name: "   ", Username: "u1", Password: "secret123"}},
		{name: "empty username", req: &models.RegisterRequest{Name: "A", Password: "secret123"}},
		{name: "short password", req: &models.RegisterRequest{Name: "A", Username: "u1", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, accounts.ErrInvalidInput)
		})
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := &models.RegisterRequest{Name: "A", Username: "taken", Password: "secret123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, accounts.ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "A", Username: "apetrova", Password: "secret123",
	})
	require.NoError(t, err)

	// Верные учётные данные
	resp, err := svc.Authenticate(context.Background(), &models.LoginRequest{
		Username: "apetrova", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "apetrova", resp.Username)

	// Неверный пароль и неизвестный аккаунт неразличимы
	_, err = svc.Authenticate(context.Background(), &models.LoginRequest{
		Username: "apetrova", Password: "wrong",
	})
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), &models.LoginRequest{
		Username: "nobody", Password: "secret123",
	})
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

// ============================================================================
// Подтверждение и удаление
// ============================================================================

func TestSetApproval(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "A", Username: "u1", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetApproval(context.Background(), resp.ID, true))
	assert.True(t, repo.teachers[resp.ID].IsApproved)

	// Повторное одобрение идемпотентно
	require.NoError(t, svc.SetApproval(context.Background(), resp.ID, true))

	require.NoError(t, svc.SetApproval(context.Background(), resp.ID, false))
	assert.False(t, repo.teachers[resp.ID].IsApproved)

	err = svc.SetApproval(context.Background(), 999, true)
	assert.ErrorIs(t, err, accounts.ErrTeacherNotFound)
}

func TestDelete_CascadesBookings(t *testing.T) {
	svc, repo, bookings := newTestService(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "A", Username: "u1", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))
	assert.NotContains(t, repo.teachers, resp.ID)
	assert.Equal(t, []int64{resp.ID}, bookings.deletedFor)

	err = svc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, accounts.ErrTeacherNotFound)
}

func TestDelete_ProtectsAdmins(t *testing.T) {
	svc, repo, bookings := newTestService(t)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	admin, err := repo.GetByUsername(context.Background(), domain.DefaultAdminUsername)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, accounts.ErrProtectedAccount)
	assert.Contains(t, repo.teachers, admin.ID)
	assert.Empty(t, bookings.deletedFor)
}

// ============================================================================
// Профиль
// ============================================================================

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "A", Subject: "Физика", Username: "u1", Password: "secret123",
	})
	require.NoError(t, err)

	newName := "Анна Петрова-Сидорова"
	newSubject := "Химия"
	resp, err := svc.UpdateProfile(context.Background(), created.ID, &models.UpdateProfileRequest{
		Name:    &newName,
		Subject: &newSubject,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, resp.Name)
	assert.Equal(t, newSubject, resp.Subject)
	// Незатронутые поля сохраняются
	assert.Equal(t, "u1", resp.Username)

	blank := "   "
	_, err = svc.UpdateProfile(context.Background(), created.ID, &models.UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, accounts.ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), 999, &models.UpdateProfileRequest{Name: &newName})
	assert.ErrorIs(t, err, accounts.ErrTeacherNotFound)
}

// ============================================================================
// Административный аккаунт по умолчанию
// ============================================================================

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, repo, _ := newTestService(t)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	admin, err := repo.GetByUsername(context.Background(), domain.DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsApproved)
	assert.Equal(t, domain.DefaultAdminName, admin.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(domain.DefaultAdminPassword)))

	// Повторный запуск не создаёт второй аккаунт
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	count, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestList_Paging(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, username := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"} {
		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name: "Teacher " + username, Username: username, Password: "secret123",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Teachers, 5)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, int64(7), resp.TotalCount)

	resp, err = svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, resp.Teachers, 2)
	assert.Equal(t, 2, resp.Page)
}
