package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	roomRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/room"
	"github.com/smartlab/SLB-BookingService/pkg/types"
)

// ============================================================================
// Фейки зависимостей
// ============================================================================

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
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
}

func (p *fakeSettingsProvider) Snapshot(_ context.Context) (domain.Settings, error) {
	return p.settings, nil
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
	settings *fakeSettingsProvider
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		bookings: &fakeBookingRepo{},
		settings: &fakeSettingsProvider{settings: domain.DefaultSettings()},
		now:      time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC),
	}

	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, Name: "SMART Lab 1"},
	}}

	env.uc = NewUseCase(env.bookings, rooms, env.settings, &nopLogger{})
	env.uc.timeProvider = &fixedTimeProvider{now: env.now}

	return env
}

func (env *testEnv) today() time.Time {
	return time.Date(env.now.Year(), env.now.Month(), env.now.Day(), 0, 0, 0, 0, time.UTC)
}

func (env *testEnv) tomorrow() time.Time {
	return env.today().AddDate(0, 0, 1)
}

// ============================================================================
// Тесты генерации кандидатов
// ============================================================================

func TestGenerateCandidates(t *testing.T) {
	// GIVEN окно 07:00-18:00 и длительность 40 минут
	window := domain.DefaultDayWindow()

	candidates, err := generateCandidates(window, 40)
	require.NoError(t, err)

	// THEN 660 минут / 40 = 16 полных слотов, последний 17:00-17:40
	require.Len(t, candidates, 16)
	assert.Equal(t, types.TimeString("07:00"), candidates[0].StartTime)
	assert.Equal(t, types.TimeString("07:40"), candidates[0].EndTime)
	assert.Equal(t, types.TimeString("17:00"), candidates[15].StartTime)
	assert.Equal(t, types.TimeString("17:40"), candidates[15].EndTime)

	for _, c := range candidates {
		assert.Equal(t, 40, c.DurationMinutes)
	}
}

func TestGenerateCandidates_ExactFit(t *testing.T) {
	// 660 минут делится на 60 без остатка: последний слот 17:00-18:00
	candidates, err := generateCandidates(domain.DefaultDayWindow(), 60)
	require.NoError(t, err)

	require.Len(t, candidates, 11)
	assert.Equal(t, types.TimeString("17:00"), candidates[10].StartTime)
	assert.Equal(t, types.TimeString("18:00"), candidates[10].EndTime)
}

func TestGenerateCandidates_DurationLongerThanDay(t *testing.T) {
	candidates, err := generateCandidates(domain.DefaultDayWindow(), 700)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

// ============================================================================
// Тесты Execute
// ============================================================================

func TestExecute_AllSlotsFree(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), &Request{RoomID: 1, Date: env.tomorrow()})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.RoomID)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_BookedSlotsExcluded(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN активные бронирования 09:00-09:40 и 10:20-11:00
	env.bookings.bookings = []*domain.Booking{
		{ID: 1, RoomID: 1, BookingDate: env.tomorrow(), StartTime: "09:00", EndTime: "09:40", Status: domain.StatusPending},
		{ID: 2, RoomID: 1, BookingDate: env.tomorrow(), StartTime: "10:20", EndTime: "11:00", Status: domain.StatusApproved},
	}

	resp, err := env.uc.Execute(context.Background(), &Request{RoomID: 1, Date: env.tomorrow()})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 14)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("09:00"), slot.StartTime)
		assert.NotEqual(t, types.TimeString("10:20"), slot.StartTime)
	}
}

func TestExecute_InactiveBookingsDoNotBlock(t *testing.T) {
	env := newTestEnv(t)

	env.bookings.bookings = []*domain.Booking{
		{ID: 1, RoomID: 1, BookingDate: env.tomorrow(), StartTime: "09:00", EndTime: "09:40", Status: domain.StatusDenied},
		{ID: 2, RoomID: 1, BookingDate: env.tomorrow(), StartTime: "10:20", EndTime: "11:00", Status: domain.StatusCancelled},
	}

	resp, err := env.uc.Execute(context.Background(), &Request{RoomID: 1, Date: env.tomorrow()})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_CutoffFiltersToday(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN сейчас 08:00, порог 40 минут: слоты раньше 08:40 недоступны
	resp, err := env.uc.Execute(context.Background(), &Request{RoomID: 1, Date: env.today()})

	require.NoError(t, err)
	// Слоты 07:00, 07:40 и 08:20 отфильтрованы, первый доступный 09:00
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Len(t, resp.Slots, 13)
}

func TestExecute_PastDateEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), &Request{RoomID: 1, Date: env.today().AddDate(0, 0, -1)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_LabClosedEmpty(t *testing.T) {
	env := newTestEnv(t)

	for _, status := range []domain.LabStatus{domain.LabUnavailable, domain.LabMaintenance} {
		env.settings.settings.LabStatus = status

		resp, err := env.uc.Execute(context.Background(), &Request{RoomID: 1, Date: env.tomorrow()})

		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	}
}

func TestExecute_RoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{RoomID: 42, Date: env.tomorrow()})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{RoomID: 0, Date: env.tomorrow()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(context.Background(), &Request{RoomID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
