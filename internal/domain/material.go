package domain

import "time"

// MaterialStatus represents the status of a material loan request
type MaterialStatus string

const (
	MaterialPending  MaterialStatus = "Pending"
	MaterialApproved MaterialStatus = "Approved"
	MaterialRejected MaterialStatus = "Rejected"
)

// ParseMaterialStatus validates a raw material status string
func ParseMaterialStatus(s string) (MaterialStatus, bool) {
	switch MaterialStatus(s) {
	case MaterialPending, MaterialApproved, MaterialRejected:
		return MaterialStatus(s), true
	}
	return "", false
}

// MaterialRequest is a request to borrow equipment for a period.
// LetterFile is the stored name of the permission letter; the file
// itself lives in an external upload store.
type MaterialRequest struct {
	ID           int64
	FullName     string
	Gender       string
	PhoneNumber  string
	ClassTeacher *string
	MaterialName string
	BorrowedDate time.Time
	ReturnedDate time.Time
	Reason       *string
	LetterFile   string
	Status       MaterialStatus
	DecidedAt    *time.Time

	CreatedAt time.Time
}

// IsDecided returns true once the request has been approved or rejected
func (m *MaterialRequest) IsDecided() bool {
	return m.Status != MaterialPending
}

// MaterialRequestsFilter narrows material request queries
type MaterialRequestsFilter struct {
	NameSearch string
	Status     *MaterialStatus
}
