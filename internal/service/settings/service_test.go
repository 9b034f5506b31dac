package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlab/SLB-BookingService/internal/domain"
	"github.com/smartlab/SLB-BookingService/internal/service/settings"
	"github.com/smartlab/SLB-BookingService/internal/service/settings/models"
)

type fakeSettingsRepo struct {
	values map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: make(map[string]string)}
}

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeSettingsRepo) GetAll(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T) (*settings.Service, *fakeSettingsRepo) {
	t.Helper()
	repo := newFakeSettingsRepo()
	return settings.NewService(repo, &nopLogger{}), repo
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestSnapshot_DefaultsOnEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), snapshot)
}

func TestSnapshot_CoercesMalformedValues(t *testing.T) {
	svc, repo := newTestService(t)
	repo.values[domain.SettingSessionDuration] = "not-a-number"
	repo.values[domain.SettingLabStatus] = "Maintenance"

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, snapshot.SessionDurationMinutes)
	assert.Equal(t, domain.LabMaintenance, snapshot.LabStatus)
}

func TestUpdate(t *testing.T) {
	svc, repo := newTestService(t)

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		SessionDurationMinutes: intPtr(60),
		LabStatus:              strPtr("Unavailable"),
		BookingCutoffMinutes:   intPtr(15),
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.SessionDurationMinutes)
	assert.Equal(t, "Unavailable", resp.LabStatus)
	assert.Equal(t, 15, resp.BookingCutoffMinutes)

	assert.Equal(t, "60", repo.values[domain.SettingSessionDuration])
	assert.Equal(t, "Unavailable", repo.values[domain.SettingLabStatus])
	assert.Equal(t, "15", repo.values[domain.SettingBookingCutoff])
}

func TestUpdate_PartialLeavesOthersAlone(t *testing.T) {
	svc, repo := newTestService(t)
	repo.values[domain.SettingSessionDuration] = "50"

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		LabStatus: strPtr("Maintenance"),
	})

	require.NoError(t, err)
	assert.Equal(t, 50, resp.SessionDurationMinutes)
	assert.Equal(t, "Maintenance", resp.LabStatus)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.UpdateSettingsRequest
		wantErr error
	}{
		{
			name:    "duration below minimum",
			req:     &models.UpdateSettingsRequest{SessionDurationMinutes: intPtr(domain.MinSessionDurationMinutes - 1)},
			wantErr: settings.ErrInvalidSessionDuration,
		},
		{
			name:    "duration above maximum",
			req:     &models.UpdateSettingsRequest{SessionDurationMinutes: intPtr(domain.MaxSessionDurationMinutes + 1)},
			wantErr: settings.ErrInvalidSessionDuration,
		},
		{
			name:    "unknown lab status",
			req:     &models.UpdateSettingsRequest{LabStatus: strPtr("Closed")},
			wantErr: settings.ErrInvalidLabStatus,
		},
		{
			name:    "negative cutoff",
			req:     &models.UpdateSettingsRequest{BookingCutoffMinutes: intPtr(-1)},
			wantErr: settings.ErrInvalidCutoff,
		},
		{
			name:    "cutoff above maximum",
			req:     &models.UpdateSettingsRequest{BookingCutoffMinutes: intPtr(domain.MaxBookingCutoffMinutes + 1)},
			wantErr: settings.ErrInvalidCutoff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)

			_, err := svc.Update(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			// Отклонённое значение не попадает в хранилище
			assert.Empty(t, repo.values)
		})
	}
}
