package domain

import "time"

// TeacherRole distinguishes regular requesters from administrators
type TeacherRole string

const (
	RoleTeacher TeacherRole = "Teacher"
	RoleAdmin   TeacherRole = "ICT_Admin"
)

// Teacher is an account in the system: a requester or an administrator
type Teacher struct {
	ID            int64
	Name          string
	Subject       string
	Username      string
	PasswordHash  string
	Role          TeacherRole
	IsApproved    bool
	Email         *string
	Phone         *string
	ClassAssigned *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true for ICT administrator accounts
func (t *Teacher) IsAdmin() bool {
	return t.Role == RoleAdmin
}

// CanSubmitBookings returns true if the account may create booking requests.
// Role is irrelevant: admins submit too, unapproved teachers may not.
func (t *Teacher) CanSubmitBookings() bool {
	return t.IsApproved
}
