package reports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/reports"
)

type fakeReportRepo struct {
	counts    map[domain.BookingStatus]int64
	teachers  []domain.RankingEntry
	subjects  []domain.RankingEntry
	directory []domain.TeacherDirectoryEntry

	countsErr error
}

func (r *fakeReportRepo) StatusCounts(_ context.Context) (map[domain.BookingStatus]int64, error) {
	if r.countsErr != nil {
		return nil, r.countsErr
	}
	return r.counts, nil
}

func (r *fakeReportRepo) TeacherRanking(_ context.Context) ([]domain.RankingEntry, error) {
	return r.teachers, nil
}

func (r *fakeReportRepo) SubjectRanking(_ context.Context) ([]domain.RankingEntry, error) {
	return r.subjects, nil
}

func (r *fakeReportRepo) TeacherDirectory(_ context.Context) ([]domain.TeacherDirectoryEntry, error) {
	return r.directory, nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func TestBuild(t *testing.T) {
	repo := &fakeReportRepo{
		counts: map[domain.BookingStatus]int64{
			domain.StatusPending:  3,
			domain.StatusApproved: 7,
		},
		teachers: []domain.RankingEntry{
			{Name: "Анна Петрова", Count: 5},
			{Name: "Иван Сидоров", Count: 2},
		},
		subjects: []domain.RankingEntry{
			{Name: "Физика", Count: 6},
		},
		directory: []domain.TeacherDirectoryEntry{
			{Name: "Анна Петрова", Bookings: 5},
		},
	}
	svc := reports.NewService(repo, &nopLogger{})

	resp, err := svc.Build(context.Background())
	require.NoError(t, err)

	// Сводка содержит все статусы, отсутствующие в выборке - нулями
	assert.Equal(t, map[string]int64{
		"Pending":   3,
		"Approved":  7,
		"Denied":    0,
		"Cancelled": 0,
	}, resp.StatusSummary)

	require.Len(t, resp.TeacherRanking, 2)
	assert.Equal(t, "Анна Петрова", resp.TeacherRanking[0].Name)
	assert.Equal(t, int64(5), resp.TeacherRanking[0].Count)

	require.Len(t, resp.SubjectRanking, 1)
	assert.Equal(t, "Физика", resp.SubjectRanking[0].Name)

	require.Len(t, resp.Directory, 1)
	assert.Equal(t, int64(5), resp.Directory[0].Bookings)
}

func TestBuild_EmptyStore(t *testing.T) {
	svc := reports.NewService(&fakeReportRepo{counts: map[domain.BookingStatus]int64{}}, &nopLogger{})

	resp, err := svc.Build(context.Background())
	require.NoError(t, err)

	assert.Len(t, resp.StatusSummary, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		assert.Zero(t, resp.StatusSummary[string(status)])
	}
	assert.Empty(t, resp.TeacherRanking)
	assert.Empty(t, resp.SubjectRanking)
	assert.Empty(t, resp.Directory)
}

func TestBuild_RepositoryFailure(t *testing.T) {
	svc := reports.NewService(&fakeReportRepo{countsErr: errors.New("timeout")}, &nopLogger{})

	_, err := svc.Build(context.Background())
	assert.ErrorIs(t, err, reports.ErrInternal)
}
