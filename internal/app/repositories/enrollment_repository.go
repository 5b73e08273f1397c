package repositories

import (
	"context"
	"encoding/json"
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

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// nullableClass collects the LEFT JOINed class columns before assembly
type nullableClass struct {
	ID             *int64
	SubjectID      *int64
	TeacherID      *string
	InviteCode     *string
	Name           *string
	BannerURL      *string
	BannerCldPubID *string
	Description    *string
	Capacity       *int
	Status         *models.ClassStatus
	SchedulesRaw   []byte
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

func (n *nullableClass) toModel() (*models.Class, error) {
	if n.ID == nil {
		return nil, nil
	}

	class := &models.Class{
		ID:             *n.ID,
		SubjectID:      *n.SubjectID,
		TeacherID:      *n.TeacherID,
		InviteCode:     *n.InviteCode,
		Name:           *n.Name,
		BannerURL:      n.BannerURL,
		BannerCldPubID: n.BannerCldPubID,
		Description:    n.Description,
		Capacity:       *n.Capacity,
		Status:         *n.Status,
		Schedules:      []models.ClassSchedule{},
		CreatedAt:      *n.CreatedAt,
		UpdatedAt:      *n.UpdatedAt,
	}

	if len(n.SchedulesRaw) > 0 {
		if err := json.Unmarshal(n.SchedulesRaw, &class.Schedules); err != nil {
			return nil, fmt.Errorf("error decoding class schedules: %w", err)
		}
	}

	return class, nil
}

// nullableSubject collects the LEFT JOINed subject columns before assembly
type nullableSubject struct {
	ID           *int64
	DepartmentID *int64
	Name         *string
	Code         *string
	Description  *string
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

func (n *nullableSubject) toModel() *models.Subject {
	if n.ID == nil {
		return nil
	}

	return &models.Subject{
		ID:           *n.ID,
		DepartmentID: *n.DepartmentID,
		Name:         *n.Name,
		Code:         *n.Code,
		Description:  n.Description,
		CreatedAt:    *n.CreatedAt,
		UpdatedAt:    *n.UpdatedAt,
	}
}

// listConditions builds the WHERE conditions shared by the count and page queries
func listConditions(filter dto.EnrollmentFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer

	if filter.ClassID != nil {
		conds = append(conds, squirrel.Eq{"e.class_id": *filter.ClassID})
	}
	if filter.StudentID != "" {
		conds = append(conds, squirrel.Eq{"e.student_id": filter.StudentID})
	}

	return conds
}

// List retrieves enrollments matching the filter, newest first, each annotated
// with its class and subject. The total is counted independently of the page
// window so totalPages stays exact.
func (r *EnrollmentRepository) List(ctx context.Context, filter dto.EnrollmentFilter) ([]*models.EnrollmentListItem, int64, error) {
	conds := listConditions(filter)

	countQuery := squirrel.Select("COUNT(*)").
		From("enrollments e").
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
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	pageQuery := squirrel.Select(
		"e.id", "e.student_id", "e.class_id", "e.created_at", "e.updated_at",
		"c.id", "c.subject_id", "c.teacher_id", "c.invite_code", "c.name", "c.banner_url",
		"c.banner_cld_pub_id", "c.description", "c.capacity", "c.status", "c.schedules",
		"c.created_at", "c.updated_at",
		"s.id", "s.department_id", "s.name", "s.code", "s.description", "s.created_at", "s.updated_at",
	).
		From("enrollments e").
		LeftJoin("classes c ON e.class_id = c.id").
		LeftJoin("subjects s ON c.subject_id = s.id").
		OrderBy("e.created_at DESC").
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

	var items []*models.EnrollmentListItem
	for rows.Next() {
		var item models.EnrollmentListItem
		var nc nullableClass
		var ns nullableSubject

		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.ClassID, &item.CreatedAt, &item.UpdatedAt,
			&nc.ID, &nc.SubjectID, &nc.TeacherID, &nc.InviteCode, &nc.Name, &nc.BannerURL,
			&nc.BannerCldPubID, &nc.Description, &nc.Capacity, &nc.Status, &nc.SchedulesRaw,
			&nc.CreatedAt, &nc.UpdatedAt,
			&ns.ID, &ns.DepartmentID, &ns.Name, &ns.Code, &ns.Description, &ns.CreatedAt, &ns.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}

		if item.Class, err = nc.toModel(); err != nil {
			return nil, 0, err
		}
		item.Subject = ns.toModel()

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetDetail assembles the fully joined view of one enrollment: class, subject,
// department and the class teacher's public fields. Broken links surface as
// nil nested objects; only a missing enrollment itself yields (nil, nil).
func (r *EnrollmentRepository) GetDetail(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	query := `
		SELECT e.id, e.student_id, e.class_id, e.created_at, e.updated_at,
		       c.id, c.subject_id, c.teacher_id, c.invite_code, c.name, c.banner_url,
		       c.banner_cld_pub_id, c.description, c.capacity, c.status, c.schedules,
		       c.created_at, c.updated_at,
		       s.id, s.department_id, s.name, s.code, s.description, s.created_at, s.updated_at,
		       d.id, d.code, d.name, d.description, d.created_at, d.updated_at,
		       u.id, u.name, u.image, u.image_cld_pub_id, u.role
		FROM enrollments e
		LEFT JOIN classes c ON e.class_id = c.id
		LEFT JOIN subjects s ON c.subject_id = s.id
		LEFT JOIN departments d ON s.department_id = d.id
		LEFT JOIN users u ON c.teacher_id = u.id
		WHERE e.id = $1
	`

	var detail models.EnrollmentDetail
	var nc nullableClass
	var ns nullableSubject
	var (
		deptID          *int64
		deptCode        *string
		deptName        *string
		deptDescription *string
		deptCreatedAt   *time.Time
		deptUpdatedAt   *time.Time

		teacherID       *string
		teacherName     *string
		teacherImage    *string
		teacherImagePub *string
		teacherRole     *models.RoleType
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&detail.ID, &detail.StudentID, &detail.ClassID, &detail.CreatedAt, &detail.UpdatedAt,
		&nc.ID, &nc.SubjectID, &nc.TeacherID, &nc.InviteCode, &nc.Name, &nc.BannerURL,
		&nc.BannerCldPubID, &nc.Description, &nc.Capacity, &nc.Status, &nc.SchedulesRaw,
		&nc.CreatedAt, &nc.UpdatedAt,
		&ns.ID, &ns.DepartmentID, &ns.Name, &ns.Code, &ns.Description, &ns.CreatedAt, &ns.UpdatedAt,
		&deptID, &deptCode, &deptName, &deptDescription, &deptCreatedAt, &deptUpdatedAt,
		&teacherID, &teacherName, &teacherImage, &teacherImagePub, &teacherRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment detail: %w", err)
	}

	if detail.Class, err = nc.toModel(); err != nil {
		return nil, err
	}
	detail.Subject = ns.toModel()

	if deptID != nil {
		detail.Department = &models.Department{
			ID:          *deptID,
			Code:        *deptCode,
			Name:        *deptName,
			Description: deptDescription,
			CreatedAt:   *deptCreatedAt,
			UpdatedAt:   *deptUpdatedAt,
		}
	}

	if teacherID != nil {
		detail.Teacher = &models.PublicUser{
			ID:            *teacherID,
			Name:          *teacherName,
			Image:         teacherImage,
			ImageCldPubID: teacherImagePub,
			Role:          *teacherRole,
		}
	}

	return &detail, nil
}

// Exists reports whether an enrollment for the (studentID, classID) pair is
// present. This only serves the friendly pre-check; the unique constraint on
// the pair is the authoritative duplicate guard.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID string, classID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND class_id = $2)`,
		studentID, classID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new enrollment and fills in the generated id and
// timestamps. A concurrent duplicate that slipped past the pre-check is
// rejected here by the unique constraint and reported as a conflict.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, class_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, enrollment.StudentID, enrollment.ClassID).
		Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_class_id_key"):
			return apperrors.ErrAlreadyEnrolled
		case dberrors.IsForeignKeyConstraintError(err, "enrollments_class_id_fkey"):
			return apperrors.ErrClassNotFound
		case dberrors.IsForeignKeyConstraintError(err, "enrollments_student_id_fkey"):
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// Delete removes an enrollment by ID. Deleting an absent id reports
// ErrEnrollmentNotFound; this is consistent across the API.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
