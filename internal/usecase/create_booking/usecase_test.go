package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	roomRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/room"
	teacherRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/teacher"
	"github.com/smartlab/SLB-BookingService/pkg/ptr"
	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// ============================================================================
// Фейки зависимостей
// ============================================================================

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64

	createErr error
	filterErr error
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := *booking
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.bookings = append(r.bookings, &stored)
	return &stored, nil
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if r.filterErr != nil {
		return nil, r.filterErr
	}
	var out []*domain.Booking
	for _, b := range r.bookings {
		if filter.RoomID != nil && b.RoomID != *filter.RoomID {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		if filter.ActiveOnly && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeTeacherRepo struct {
	teachers map[int64]*domain.Teacher
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*domain.Teacher, error) {
	t, ok := r.teachers[id]
	if !ok {
		return nil, teacherRepo.ErrTeacherNotFound
	}
	return t, nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakeSettingsProvider struct {
	settings domain.Settings
	err      error
}

func (p *fakeSettingsProvider) Snapshot(_ context.Context) (domain.Settings, error) {
	if p.err != nil {
		return domain.Settings{}, p.err
	}
	return p.settings, nil
}

type passThroughTxManager struct{}

func (m *passThroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// lockingTxManager сериализует колбэки мьютексом, имитируя поведение
// SERIALIZABLE-транзакций для конкурирующих заявок
type lockingTxManager struct {
	mu sync.Mutex
}

func (m *lockingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// serializationFailingTxManager всегда откатывается с ошибкой сериализации Postgres
type serializationFailingTxManager struct{}

func (m *serializationFailingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

// ============================================================================
// Вспомогательная сборка use case
// ============================================================================

type testEnv struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	teachers *fakeTeacherRepo
	rooms    *fakeRoomRepo
	settings *fakeSettingsProvider
	now      time.Time
}

// newTestEnv собирает use case с одобренным учителем id=1,
// помещением id=1 и дефолтной политикой. Часы остановлены
// на 08:00 текущего дня.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	env := &testEnv{
		bookings: &fakeBookingRepo{},
		teachers: &fakeTeacherRepo{teachers: map[int64]*domain.Teacher{
			1: {ID: 1, Name: "Анна Петрова", Username: "apetrova", Role: domain.RoleTeacher, IsApproved: true},
			2: {ID: 2, Name: "Новый Учитель", Username: "newbie", Role: domain.RoleTeacher, IsApproved: false},
		}},
		rooms: &fakeRoomRepo{rooms: map[int64]*domain.Room{
			1: {ID: 1, Name: "SMART Lab 1"},
		}},
		settings: &fakeSettingsProvider{settings: domain.DefaultSettings()},
		now:      now,
	}

	env.uc = NewUseCase(env.bookings, env.teachers, env.rooms, env.settings, &passThroughTxManager{}, &nopLogger{})
	env.uc.timeProvider = &fixedTimeProvider{now: now}

	return env
}

func (env *testEnv) today() time.Time {
	return time.Date(env.now.Year(), env.now.Month(), env.now.Day(), 0, 0, 0, 0, time.UTC)
}

func (env *testEnv) tomorrow() time.Time {
	return env.today().AddDate(0, 0, 1)
}

// ============================================================================
// Тесты
// ============================================================================

func TestExecute_CreatesPendingBooking(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN заявка на завтра в рабочие часы
	req := &Request{
		TeacherID: 1,
		RoomID:    1,
		Date:      env.tomorrow(),
		StartTime: "09:00",
		Equipment: ptr.Ptr("projector"),
	}

	// WHEN
	resp, err := env.uc.Execute(context.Background(), req)

	// THEN бронирование создано со статусом Pending и длительностью из политики
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("09:40"), resp.EndTime)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, resp.DurationMinutes)
	require.NotNil(t, resp.Equipment)
	assert.Equal(t, "projector", *resp.Equipment)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "non-positive teacher id", req: &Request{TeacherID: 0, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00"}},
		{name: "non-positive room id", req: &Request{TeacherID: 1, RoomID: -1, Date: env.tomorrow(), StartTime: "09:00"}},
		{name: "zero date", req: &Request{TeacherID: 1, RoomID: 1, StartTime: "09:00"}},
		{name: "empty start time", req: &Request{TeacherID: 1, RoomID: 1, Date: env.tomorrow()}},
		{name: "malformed start time", req: &Request{TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "9 o'clock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TeacherChecks(t *testing.T) {
	env := newTestEnv(t)

	// Несуществующий аккаунт
	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 99, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrTeacherNotFound)

	// Аккаунт без подтверждения администратора
	_, err = env.uc.Execute(context.Background(), &Request{
		TeacherID: 2, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrTeacherNotApproved)
}

func TestExecute_RoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 42, Date: env.tomorrow(), StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.today().AddDate(0, 0, -1), StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_LabUnavailable(t *testing.T) {
	env := newTestEnv(t)

	for _, status := range []domain.LabStatus{domain.LabUnavailable, domain.LabMaintenance} {
		env.settings.settings.LabStatus = status

		_, err := env.uc.Execute(context.Background(), &Request{
			TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
		})
		assert.ErrorIs(t, err, ErrLabUnavailable)
	}
}

func TestExecute_OperatingWindow(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		startTime types.TimeString
	}{
		{name: "before opening", startTime: "06:30"},
		{name: "slot ends after closing", startTime: "17:30"},
		{name: "slot crosses midnight", startTime: "23:50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), &Request{
				TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: tt.startTime,
			})
			assert.ErrorIs(t, err, ErrOutsideOperatingHours)
		})
	}

	// Граничные случаи: начало ровно в открытие и слот, заканчивающийся
	// ровно в закрытие, проходят
	for _, startTime := range []types.TimeString{"07:00", "17:20"} {
		_, err := env.uc.Execute(context.Background(), &Request{
			TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: startTime,
		})
		assert.NoError(t, err, "start time %s", startTime)
	}
}

func TestExecute_Cutoff(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN сейчас 08:00, порог отсечки 40 минут
	// WHEN заявка на сегодня на 08:30 (раньше 08:40)
	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.today(), StartTime: "08:30",
	})
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Ровно на пороге - допускается
	_, err = env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.today(), StartTime: "08:40",
	})
	assert.NoError(t, err)

	// Для будущих дат порог не действует
	_, err = env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "07:00",
	})
	assert.NoError(t, err)
}

func TestExecute_CutoffCrossesMidnight(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN часы показывают поздний вечер, порог уходит за полночь
	lateNow := time.Date(2026, 9, 15, 23, 30, 0, 0, time.UTC)
	env.uc.timeProvider = &fixedTimeProvider{now: lateNow}
	env.now = lateNow

	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.today(), StartTime: "17:20",
	})

	// THEN на сегодня бронировать уже нельзя (но сам слот в рабочих часах,
	// поэтому это именно отсечка, а не рабочие часы)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_SlotConflict(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN активное бронирование 09:00-09:40 на завтра
	first, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})
	require.NoError(t, err)

	// WHEN вторая заявка пересекается с первым слотом
	_, err = env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:30",
	})

	// THEN конфликт раскрывается и через errors.Is, и через errors.As
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *SlotConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, first.ID, conflictErr.ConflictingBookingID)
}

func TestExecute_TouchingSlotsDoNotConflict(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN бронирование 09:00-09:40
	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})
	require.NoError(t, err)

	// WHEN следующий слот начинается ровно в 09:40
	resp, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:40",
	})

	// THEN границы интервалов не считаются пересечением
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:40"), resp.StartTime)
}

func TestExecute_InactiveBookingsDoNotBlock(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN отменённое бронирование на тот же слот
	env.bookings.bookings = append(env.bookings.bookings, &domain.Booking{
		ID: 77, RoomID: 1, BookingDate: env.tomorrow(),
		StartTime: "09:00", EndTime: "09:40", Status: domain.StatusCancelled,
	})

	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})

	assert.NoError(t, err)
}

func TestExecute_OtherRoomDoesNotConflict(t *testing.T) {
	env := newTestEnv(t)
	env.rooms.rooms[2] = &domain.Room{ID: 2, Name: "SMART Lab 2"}

	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})
	require.NoError(t, err)

	// Тот же слот в другом помещении свободен
	_, err = env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 2, Date: env.tomorrow(), StartTime: "09:00",
	})
	assert.NoError(t, err)
}

func TestExecute_CustomSessionDuration(t *testing.T) {
	env := newTestEnv(t)
	env.settings.settings.SessionDurationMinutes = 90

	resp, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_ConcurrentOverlappingSubmissions(t *testing.T) {
	env := newTestEnv(t)
	env.uc.txManager = &lockingTxManager{}

	// GIVEN две пересекающиеся заявки на один слот из двух горутин
	starts := []types.TimeString{"09:00", "09:30"}
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i := range starts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Execute(context.Background(), &Request{
				TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: starts[i],
			})
		}(i)
	}
	wg.Wait()

	// THEN допущена ровно одна, вторая получила конфликт слота
	var admitted, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, env.bookings.bookings, 1)
}

func TestExecute_SerializationFailureReportsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.uc.txManager = &serializationFailingTxManager{}

	// Проигравшая сериализацию заявка получает конфликт слота, а не
	// внутреннюю ошибку
	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.createErr = errors.New("connection reset")

	_, err := env.uc.Execute(context.Background(), &Request{
		TeacherID: 1, RoomID: 1, Date: env.tomorrow(), StartTime: "09:00",
	})

	assert.ErrorIs(t, err, ErrInternal)
}
