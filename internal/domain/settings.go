package domain

import "strconv"

// Setting keys
const (
	SettingSessionDuration = "session_duration"
	SettingLabStatus       = "lab_status"
	SettingBookingCutoff   = "booking_cutoff_minutes"
)

// LabStatus is the facility-wide availability switch
type LabStatus string

const (
	LabAvailable   LabStatus = "Available"
	LabUnavailable LabStatus = "Unavailable"
	LabMaintenance LabStatus = "Maintenance"
)

// ParseLabStatus validates a raw lab status string
func ParseLabStatus(s string) (LabStatus, bool) {
	switch LabStatus(s) {
	case LabAvailable, LabUnavailable, LabMaintenance:
		return LabStatus(s), true
	}
	return "", false
}

// Settings is a point-in-time snapshot of the booking policy.
// The admission engine reads one snapshot per decision.
type Settings struct {
	SessionDurationMinutes int
	LabStatus              LabStatus
	BookingCutoffMinutes   int
}

// DefaultSettings returns the documented defaults applied when a key
// is absent or its stored value is malformed
func DefaultSettings() Settings {
	return Settings{
		SessionDurationMinutes: DefaultSessionDurationMinutes,
		LabStatus:              LabAvailable,
		BookingCutoffMinutes:   DefaultBookingCutoffMinutes,
	}
}

// SettingsFromValues builds a snapshot from raw stored key/values.
// A malformed value falls back to the default for its key instead of
// failing the admission path.
func SettingsFromValues(values map[string]string) Settings {
	s := DefaultSettings()

	if raw, ok := values[SettingSessionDuration]; ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			s.SessionDurationMinutes = v
		}
	}
	if raw, ok := values[SettingLabStatus]; ok {
		if status, valid := ParseLabStatus(raw); valid {
			s.LabStatus = status
		}
	}
	if raw, ok := values[SettingBookingCutoff]; ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			s.BookingCutoffMinutes = v
		}
	}

	return s
}
