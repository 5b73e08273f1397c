package services

import (
	"context"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
)

// The services consume the repository layer through these interfaces so the
// business rules can be exercised against fakes. The concrete pgx-backed
// repositories satisfy them.

// DepartmentStore is the department persistence contract
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	HasSubjects(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// SubjectStore is the subject persistence contract
type SubjectStore interface {
	Search(ctx context.Context, filter dto.SubjectFilter) ([]*models.Subject, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// ClassStore is the class persistence contract
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (*models.Class, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore is the enrollment persistence contract
type EnrollmentStore interface {
	List(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.EnrollmentListItem, int64, error)
	GetDetail(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	Exists(ctx context.Context, studentID string, classID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// UserStore reads principals owned by the external identity service
type UserStore interface {
	GetPublicByID(ctx context.Context, id string) (*models.PublicUser, error)
	Exists(ctx context.Context, id string) (bool, error)
}
