package services

import (
	"context"
	"fmt"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/pkg/apperrors"
	"github.com/kerem/classora/internal/pkg/helpers"
)

// EnrollmentService handles enrollment reads and the two enrollment entry
// points (direct enroll and invite-code join), which share one create path.
type EnrollmentService struct {
	enrollmentRepo EnrollmentStore
	classRepo      ClassStore
	userRepo       UserStore
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo EnrollmentStore, classRepo ClassStore, userRepo UserStore) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		classRepo:      classRepo,
		userRepo:       userRepo,
	}
}

// ListEnrollments retrieves enrollments filtered by class and/or student,
// each annotated with its class and subject.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.EnrollmentListItem, dto.PaginationInfo, error) {
	filter.Page, filter.Limit = helpers.ClampPageLimit(filter.Page, filter.Limit)

	items, total, err := s.enrollmentRepo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing enrollments: %w", err)
	}

	if items == nil {
		items = []*models.EnrollmentListItem{}
	}

	return items, helpers.NewPaginationInfo(total, filter.Page, filter.Limit), nil
}

// GetEnrollmentDetail retrieves the fully joined view of one enrollment
func (s *EnrollmentService) GetEnrollmentDetail(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	detail, err := s.enrollmentRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	if detail == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	return detail, nil
}

// Enroll enrolls a student directly into a class by class id
func (s *EnrollmentService) Enroll(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error checking class: %w", err)
	}
	if class == nil {
		return nil, apperrors.ErrClassNotFound
	}

	return s.enroll(ctx, class.ID, studentID)
}

// JoinByInviteCode enrolls a student into the class identified by the invite code
func (s *EnrollmentService) JoinByInviteCode(ctx context.Context, inviteCode, studentID string) (*models.EnrollmentDetail, error) {
	class, err := s.classRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, fmt.Errorf("error resolving invite code: %w", err)
	}
	if class == nil {
		return nil, apperrors.ErrClassNotFound
	}

	return s.enroll(ctx, class.ID, studentID)
}

// enroll is the shared create path. The duplicate pre-check exists only for
// the friendly error; under concurrent identical requests the unique
// constraint on (student_id, class_id) is what guarantees a single row, and
// its violation is reported as the same conflict.
func (s *EnrollmentService) enroll(ctx context.Context, classID int64, studentID string) (*models.EnrollmentDetail, error) {
	student, err := s.userRepo.GetPublicByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, studentID, classID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		ClassID:   classID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyEnrolled, apperrors.ErrClassNotFound, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	detail, err := s.enrollmentRepo.GetDetail(ctx, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving created enrollment: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	return detail, nil
}

// DeleteEnrollment removes an enrollment by id. Removing an id that does not
// exist reports ErrEnrollmentNotFound; the API documents this consistently.
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return err
		}
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	return nil
}
