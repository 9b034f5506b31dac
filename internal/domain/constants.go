package domain

// Default policy values (used when a setting is absent or malformed)
const (
	DefaultSessionDurationMinutes = 40
	DefaultBookingCutoffMinutes   = 40
)

// Lab operating window: bookable start times lie within [OpenTime, CloseTime)
const (
	DefaultOpenTime  = "07:00"
	DefaultCloseTime = "18:00"
)

// Business validation constants
const (
	MinSessionDurationMinutes = 5
	MaxSessionDurationMinutes = 480 // 8 hours
	MinBookingCutoffMinutes   = 0
	MaxBookingCutoffMinutes   = 10080 // 1 week
	MaxEquipmentLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Bootstrap admin account (created once per store on startup)
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "System Administrator"
)
