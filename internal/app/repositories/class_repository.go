package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/pkg/apperrors"
	"github.com/kerem/classora/internal/pkg/dberrors"
)

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, subject_id, teacher_id, invite_code, name, banner_url,
	banner_cld_pub_id, description, capacity, status, schedules, created_at, updated_at`

// scanClass scans one classColumns row into a Class, decoding the schedules JSONB.
func scanClass(row pgx.Row) (*models.Class, error) {
	var class models.Class
	var schedulesRaw []byte

	err := row.Scan(
		&class.ID,
		&class.SubjectID,
		&class.TeacherID,
		&class.InviteCode,
		&class.Name,
		&class.BannerURL,
		&class.BannerCldPubID,
		&class.Description,
		&class.Capacity,
		&class.Status,
		&schedulesRaw,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(schedulesRaw) > 0 {
		if err := json.Unmarshal(schedulesRaw, &class.Schedules); err != nil {
			return nil, fmt.Errorf("error decoding class schedules: %w", err)
		}
	}
	if class.Schedules == nil {
		class.Schedules = []models.ClassSchedule{}
	}

	return &class, nil
}

// Create inserts a new class and fills in the generated id and timestamps
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.Schedules == nil {
		class.Schedules = []models.ClassSchedule{}
	}
	schedulesRaw, err := json.Marshal(class.Schedules)
	if err != nil {
		return fmt.Errorf("error encoding class schedules: %w", err)
	}

	query := `
		INSERT INTO classes (subject_id, teacher_id, invite_code, name, banner_url,
			banner_cld_pub_id, description, capacity, status, schedules)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		class.SubjectID, class.TeacherID, class.InviteCode, class.Name, class.BannerURL,
		class.BannerCldPubID, class.Description, class.Capacity, class.Status, schedulesRaw).
		Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "classes_invite_code_key"):
			return apperrors.ErrInviteCodeTaken
		case dberrors.IsForeignKeyConstraintError(err, "classes_subject_id_fkey"):
			return apperrors.ErrSubjectNotFound
		case dberrors.IsForeignKeyConstraintError(err, "classes_teacher_id_fkey"):
			return apperrors.ErrTeacherNotFound
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID. Returns (nil, nil) when absent.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	class, err := scanClass(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return class, nil
}

// GetByInviteCode resolves a class by its invite code. Returns (nil, nil) when
// the code is unknown.
func (r *ClassRepository) GetByInviteCode(ctx context.Context, inviteCode string) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE invite_code = $1`

	class, err := scanClass(r.db.QueryRow(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving class by invite code: %w", err)
	}

	return class, nil
}

// GetBySubjectID retrieves all classes of a subject
func (r *ClassRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE subject_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// Update updates the mutable fields of an existing class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	if class.Schedules == nil {
		class.Schedules = []models.ClassSchedule{}
	}
	schedulesRaw, err := json.Marshal(class.Schedules)
	if err != nil {
		return fmt.Errorf("error encoding class schedules: %w", err)
	}

	query := `
		UPDATE classes
		SET name = $1, banner_url = $2, banner_cld_pub_id = $3, description = $4,
			capacity = $5, status = $6, schedules = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		class.Name, class.BannerURL, class.BannerCldPubID, class.Description,
		class.Capacity, class.Status, schedulesRaw, class.ID).
		Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrClassNotFound
		}
		return fmt.Errorf("error updating class: %w", err)
	}

	return nil
}

// Delete deletes a class by ID. Its enrollments are removed by the schema's
// ON DELETE CASCADE rule within the same statement.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
