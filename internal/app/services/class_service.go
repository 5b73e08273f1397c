package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/pkg/apperrors"
)

// inviteCodeAttempts bounds regeneration when a generated code collides.
const inviteCodeAttempts = 3

// ClassService handles class lifecycle operations
type ClassService struct {
	classRepo   ClassStore
	subjectRepo SubjectStore
	userRepo    UserStore
}

// NewClassService creates a new class service instance
func NewClassService(classRepo ClassStore, subjectRepo SubjectStore, userRepo UserStore) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		subjectRepo: subjectRepo,
		userRepo:    userRepo,
	}
}

// generateInviteCode derives a short join code from a fresh UUID
func generateInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// CreateClass creates a new class for an existing subject and teacher
// principal. The invite code is generated server-side; on the unlikely
// collision the code is regenerated and the insert retried.
func (s *ClassService) CreateClass(ctx context.Context, class *models.Class) error {
	class.Name = strings.TrimSpace(class.Name)
	if class.Name == "" {
		return apperrors.NewBadRequestError("class name is required")
	}

	subject, err := s.subjectRepo.GetByID(ctx, class.SubjectID)
	if err != nil {
		return fmt.Errorf("error checking subject: %w", err)
	}
	if subject == nil {
		return apperrors.ErrSubjectNotFound
	}

	teacher, err := s.userRepo.GetPublicByID(ctx, class.TeacherID)
	if err != nil {
		return fmt.Errorf("error checking teacher: %w", err)
	}
	if teacher == nil {
		return apperrors.ErrTeacherNotFound
	}

	if class.Capacity <= 0 {
		class.Capacity = models.DefaultClassCapacity
	}
	if class.Status == "" {
		class.Status = models.ClassStatusActive
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		class.InviteCode = generateInviteCode()
		err = s.classRepo.Create(ctx, class)
		if err == nil {
			class.Subject = subject
			class.Teacher = teacher
			return nil
		}
		if !apperrors.Is(err, apperrors.ErrInviteCodeTaken) {
			break
		}
	}

	if apperrors.Is(err, apperrors.ErrSubjectNotFound, apperrors.ErrTeacherNotFound, apperrors.ErrInviteCodeTaken) {
		return err
	}
	return fmt.Errorf("error creating class: %w", err)
}

// GetClassByID retrieves a class annotated with its subject and teacher
func (s *ClassService) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	if class == nil {
		return nil, apperrors.ErrClassNotFound
	}

	// Linked rows may be gone; surface them as absent rather than failing.
	if subject, err := s.subjectRepo.GetByID(ctx, class.SubjectID); err == nil && subject != nil {
		class.Subject = subject
	}
	if teacher, err := s.userRepo.GetPublicByID(ctx, class.TeacherID); err == nil && teacher != nil {
		class.Teacher = teacher
	}

	return class, nil
}

// GetClassesBySubject retrieves all classes of an existing subject
func (s *ClassService) GetClassesBySubject(ctx context.Context, subjectID int64) ([]*models.Class, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error checking subject: %w", err)
	}
	if subject == nil {
		return nil, apperrors.ErrSubjectNotFound
	}

	classes, err := s.classRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}
	if classes == nil {
		classes = []*models.Class{}
	}

	return classes, nil
}

// UpdateClass updates the mutable fields of an existing class
func (s *ClassService) UpdateClass(ctx context.Context, class *models.Class) error {
	class.Name = strings.TrimSpace(class.Name)
	if class.Name == "" {
		return apperrors.NewBadRequestError("class name is required")
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound) {
			return err
		}
		return fmt.Errorf("error updating class: %w", err)
	}

	return nil
}

// DeleteClass deletes a class; its enrollments cascade away in the same statement
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	if err := s.classRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrClassNotFound) {
			return err
		}
		return fmt.Errorf("error deleting class: %w", err)
	}

	return nil
}
