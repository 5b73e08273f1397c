package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/pkg/apperrors"
	"github.com/kerem/classora/internal/pkg/helpers"
)

// SubjectService handles subject catalog operations
type SubjectService struct {
	subjectRepo    SubjectStore
	departmentRepo DepartmentStore
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo SubjectStore, departmentRepo DepartmentStore) *SubjectService {
	return &SubjectService{
		subjectRepo:    subjectRepo,
		departmentRepo: departmentRepo,
	}
}

// SearchSubjects runs the catalog search: free-text match on subject name or
// code, department-name filter, both AND-combined when present. Pagination
// inputs are clamped, never rejected.
func (s *SubjectService) SearchSubjects(ctx context.Context, filter dto.SubjectFilter) ([]*models.Subject, dto.PaginationInfo, error) {
	filter.Page, filter.Limit = helpers.ClampPageLimit(filter.Page, filter.Limit)

	subjects, total, err := s.subjectRepo.Search(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error searching subjects: %w", err)
	}

	if subjects == nil {
		subjects = []*models.Subject{}
	}

	return subjects, helpers.NewPaginationInfo(total, filter.Page, filter.Limit), nil
}

// GetSubjectByID retrieves a subject with its department
func (s *SubjectService) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	if subject == nil {
		return nil, apperrors.ErrSubjectNotFound
	}

	return subject, nil
}

// CreateSubject creates a new subject under an existing department
func (s *SubjectService) CreateSubject(ctx context.Context, subject *models.Subject) error {
	subject.Code = strings.ToUpper(strings.TrimSpace(subject.Code))
	subject.Name = strings.TrimSpace(subject.Name)

	if subject.Code == "" || subject.Name == "" {
		return apperrors.NewBadRequestError("subject code and name are required")
	}

	// Friendly existence check; the FK constraint still backs this up.
	department, err := s.departmentRepo.GetByID(ctx, subject.DepartmentID)
	if err != nil {
		return fmt.Errorf("error checking department: %w", err)
	}
	if department == nil {
		return apperrors.ErrDepartmentNotFound
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		if apperrors.Is(err, apperrors.ErrSubjectAlreadyExists, apperrors.ErrDepartmentNotFound) {
			return err
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	subject.Department = department
	return nil
}

// UpdateSubject updates an existing subject
func (s *SubjectService) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	subject.Code = strings.ToUpper(strings.TrimSpace(subject.Code))
	subject.Name = strings.TrimSpace(subject.Name)

	if subject.Code == "" || subject.Name == "" {
		return apperrors.NewBadRequestError("subject code and name are required")
	}

	department, err := s.departmentRepo.GetByID(ctx, subject.DepartmentID)
	if err != nil {
		return fmt.Errorf("error checking department: %w", err)
	}
	if department == nil {
		return apperrors.ErrDepartmentNotFound
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		if apperrors.Is(err, apperrors.ErrSubjectNotFound, apperrors.ErrSubjectAlreadyExists, apperrors.ErrDepartmentNotFound) {
			return err
		}
		return fmt.Errorf("error updating subject: %w", err)
	}

	subject.Department = department
	return nil
}

// DeleteSubject deletes a subject. Its classes and their enrollments cascade
// away atomically inside the single delete statement.
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrSubjectNotFound) {
			return err
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}

	return nil
}
