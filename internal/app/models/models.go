package models

// ClassStatus defines the lifecycle status of a class
type ClassStatus string

const (
	ClassStatusActive   ClassStatus = "active"
	ClassStatusInactive ClassStatus = "inactive"
	ClassStatusArchived ClassStatus = "archived"
)

// RoleType defines the user role type. User rows are owned by the external
// identity service; the role is carried here read-only.
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
)

// DefaultClassCapacity is applied when a class is created without an explicit capacity.
const DefaultClassCapacity = 50
