package domain

// StatusSummary maps every booking status to its count (zero-filled)
type StatusSummary map[BookingStatus]int64

// RankingEntry is one row of an approved-bookings ranking
type RankingEntry struct {
	Name  string
	Count int64
}

// TeacherDirectoryEntry is one row of the teacher contact report
type TeacherDirectoryEntry struct {
	Name     string
	Email    *string
	Phone    *string
	Bookings int64
}
