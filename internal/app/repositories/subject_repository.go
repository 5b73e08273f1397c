package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/pkg/apperrors"
	"github.com/kerem/classora/internal/pkg/dberrors"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// searchConditions builds the WHERE conditions shared by the count and page
// queries so pagination totals stay consistent with the windowed result set.
func searchConditions(filter dto.SubjectFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"s.code": pattern},
		})
	}

	if filter.Department != "" {
		conds = append(conds, squirrel.ILike{"d.name": "%" + filter.Department + "%"})
	}

	return conds
}

// Search retrieves subjects matching the filter, newest first, with the total
// matching count computed independently of the page slice. Each row carries
// its owning department, or nil when the link does not resolve.
func (r *SubjectRepository) Search(ctx context.Context, filter dto.SubjectFilter) ([]*models.Subject, int64, error) {
	conds := searchConditions(filter)

	countQuery := squirrel.Select("COUNT(*)").
		From("subjects s").
		LeftJoin("departments d ON s.department_id = d.id").
		PlaceholderFormat(squirrel.Dollar)
	for _, c := range conds {
		countQuery = countQuery.Where(c)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting subjects: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	pageQuery := squirrel.Select(
		"s.id", "s.department_id", "s.name", "s.code", "s.description", "s.created_at", "s.updated_at",
		"d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at",
	).
		From("subjects s").
		LeftJoin("departments d ON s.department_id = d.id").
		OrderBy("s.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)
	for _, c := range conds {
		pageQuery = pageQuery.Where(c)
	}

	sql, args, err = pageQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		var (
			deptID          *int64
			deptCode        *string
			deptName        *string
			deptDescription *string
			deptCreatedAt   *time.Time
			deptUpdatedAt   *time.Time
		)

		if err := rows.Scan(
			&subject.ID,
			&subject.DepartmentID,
			&subject.Name,
			&subject.Code,
			&subject.Description,
			&subject.CreatedAt,
			&subject.UpdatedAt,
			&deptID,
			&deptCode,
			&deptName,
			&deptDescription,
			&deptCreatedAt,
			&deptUpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}

		if deptID != nil {
			subject.Department = &models.Department{
				ID:          *deptID,
				Code:        *deptCode,
				Name:        *deptName,
				Description: deptDescription,
				CreatedAt:   *deptCreatedAt,
				UpdatedAt:   *deptUpdatedAt,
			}
		}

		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return subjects, total, nil
}

// GetByID retrieves a subject with its department. Returns (nil, nil) when absent.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT s.id, s.department_id, s.name, s.code, s.description, s.created_at, s.updated_at,
		       d.id, d.code, d.name, d.description, d.created_at, d.updated_at
		FROM subjects s
		LEFT JOIN departments d ON s.department_id = d.id
		WHERE s.id = $1
	`

	var subject models.Subject
	var (
		deptID          *int64
		deptCode        *string
		deptName        *string
		deptDescription *string
		deptCreatedAt   *time.Time
		deptUpdatedAt   *time.Time
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.DepartmentID,
		&subject.Name,
		&subject.Code,
		&subject.Description,
		&subject.CreatedAt,
		&subject.UpdatedAt,
		&deptID,
		&deptCode,
		&deptName,
		&deptDescription,
		&deptCreatedAt,
		&deptUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	if deptID != nil {
		subject.Department = &models.Department{
			ID:          *deptID,
			Code:        *deptCode,
			Name:        *deptName,
			Description: deptDescription,
			CreatedAt:   *deptCreatedAt,
			UpdatedAt:   *deptUpdatedAt,
		}
	}

	return &subject, nil
}

// Create inserts a new subject and fills in the generated id and timestamps
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (department_id, name, code, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		subject.DepartmentID, subject.Name, subject.Code, subject.Description).
		Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_code_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// Update updates an existing subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET department_id = $1, name = $2, code = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		subject.DepartmentID, subject.Name, subject.Code, subject.Description, subject.ID).
		Scan(&subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSubjectNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "subjects_code_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error updating subject: %w", err)
	}

	return nil
}

// Delete deletes a subject by ID. Classes of the subject and their
// enrollments are removed by the schema's ON DELETE CASCADE rules, all
// within this single statement.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
