package models

import "time"

// Enrollment links a student principal to a class. The (StudentID, ClassID)
// pair is unique; the database constraint is the source of truth for that.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID string    `json:"studentId" db:"student_id"`
	ClassID   int64     `json:"classId" db:"class_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// EnrollmentDetail is the fully joined view of an enrollment. Linked rows
// that no longer resolve are left nil rather than failing the whole read.
type EnrollmentDetail struct {
	Enrollment
	Class      *Class      `json:"class"`
	Subject    *Subject    `json:"subject"`
	Department *Department `json:"department"`
	Teacher    *PublicUser `json:"teacher"`
}

// EnrollmentListItem is the compact list view: class and subject only.
type EnrollmentListItem struct {
	Enrollment
	Class   *Class   `json:"class"`
	Subject *Subject `json:"subject"`
}
