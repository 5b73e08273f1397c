package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := pgError("23505", "enrollments_student_id_class_id_key")

	if !IsDuplicateConstraintError(dup, "enrollments_student_id_class_id_key") {
		t.Error("expected match on unique violation with the named constraint")
	}
	if IsDuplicateConstraintError(dup, "subjects_code_key") {
		t.Error("matched a different constraint name")
	}
	if IsDuplicateConstraintError(errors.New("plain error"), "subjects_code_key") {
		t.Error("matched a non-pg error")
	}
}

func TestIsDuplicateConstraintErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("insert failed: %w", pgError("23505", "departments_code_key"))
	if !IsDuplicateConstraintError(wrapped, "departments_code_key") {
		t.Error("expected match through error wrapping")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(pgError("23505", "")) {
		t.Error("expected unique violation match")
	}
	if IsUniqueViolation(pgError("23503", "")) {
		t.Error("foreign key violation reported as unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil reported as unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(pgError("23503", "classes_subject_id_fkey")) {
		t.Error("expected foreign key violation match")
	}
	if IsForeignKeyViolation(pgError("23505", "")) {
		t.Error("unique violation reported as foreign key violation")
	}
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	fk := pgError("23503", "classes_teacher_id_fkey")

	if !IsForeignKeyConstraintError(fk, "classes_teacher_id_fkey") {
		t.Error("expected match on foreign key violation with the named constraint")
	}
	if IsForeignKeyConstraintError(fk, "classes_subject_id_fkey") {
		t.Error("matched a different constraint name")
	}
}
