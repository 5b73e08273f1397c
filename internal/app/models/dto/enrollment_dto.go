package dto

// EnrollmentFilter carries the enrollment listing inputs
type EnrollmentFilter struct {
	ClassID   *int64 // Optional, already parsed at the controller boundary
	StudentID string // Optional
	Page      int
	Limit     int
}

// CreateEnrollmentRequest represents a direct enrollment request
type CreateEnrollmentRequest struct {
	ClassID   int64  `json:"classId" binding:"required,min=1"`
	StudentID string `json:"studentId" binding:"required"`
}

// JoinClassRequest represents a self-service join via class invite code
type JoinClassRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
	StudentID  string `json:"studentId" binding:"required"`
}
