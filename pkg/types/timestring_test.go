package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 15, 9, 40, 37, 0, time.UTC)
	assert.Equal(t, TimeString("09:40"), NewTimeString(moment))
}

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "empty", input: "", wantErr: true},
		{name: "no minutes", input: "09", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "09:60", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "simple add", start: "09:00", minutes: 40, want: "09:40"},
		{name: "hour rollover", start: "09:30", minutes: 40, want: "10:10"},
		{name: "zero minutes", start: "09:00", minutes: 0, want: "09:00"},
		{name: "negative minutes", start: "09:00", minutes: -10, wantErr: ErrNegativeMinutes},
		{name: "crosses midnight", start: "23:50", minutes: 30, wantErr: ErrInvalidTimeString},
		{name: "exactly midnight", start: "23:20", minutes: 40, wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesUntil(t *testing.T) {
	got, err := TimeString("09:00").MinutesUntil("09:40")
	require.NoError(t, err)
	assert.Equal(t, 40, got)

	got, err = TimeString("10:00").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -60, got)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("09:01").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}
