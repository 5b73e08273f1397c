package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/pkg/apperrors"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo DepartmentStore
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo DepartmentStore) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
	}
}

// CreateDepartment creates a new department. Codes are normalized to upper case.
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	department.Code = strings.ToUpper(strings.TrimSpace(department.Code))
	department.Name = strings.TrimSpace(department.Name)

	if department.Code == "" || department.Name == "" {
		return apperrors.NewBadRequestError("department code and name are required")
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		if apperrors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			return err
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	if department == nil {
		return nil, apperrors.ErrDepartmentNotFound
	}

	return department, nil
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}

	return departments, nil
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	department.Code = strings.ToUpper(strings.TrimSpace(department.Code))
	department.Name = strings.TrimSpace(department.Name)

	if department.Code == "" || department.Name == "" {
		return apperrors.NewBadRequestError("department code and name are required")
	}

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		if apperrors.Is(err, apperrors.ErrDepartmentNotFound, apperrors.ErrDepartmentAlreadyExists) {
			return err
		}
		return fmt.Errorf("error updating department: %w", err)
	}

	return nil
}

// DeleteDepartment deletes a department by ID. Deletion is restricted while
// any subject still references the department; the existence check here only
// produces the friendlier error, the schema's RESTRICT rule is authoritative.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	hasSubjects, err := s.departmentRepo.HasSubjects(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking department subjects: %w", err)
	}
	if hasSubjects {
		return apperrors.ErrDepartmentHasSubjects
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrDepartmentNotFound, apperrors.ErrDepartmentHasSubjects) {
			return err
		}
		return fmt.Errorf("error deleting department: %w", err)
	}

	return nil
}
