package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/pkg/apperrors"
)

func newEnrollmentServiceFixture(t *testing.T) (*EnrollmentService, *fakeEnrollmentStore, *fakeClassStore, *fakeUserStore) {
	t.Helper()

	classStore := newFakeClassStore()
	userStore := newFakeUserStore()
	enrollStore := newFakeEnrollmentStore()

	userStore.users["student-1"] = &models.PublicUser{ID: "student-1", Name: "Grace", Role: models.RoleStudent}

	class := &models.Class{SubjectID: 1, TeacherID: "teacher-1", Name: "Algebra 101", InviteCode: "AB12CD34"}
	if err := classStore.Create(context.Background(), class); err != nil {
		t.Fatalf("seeding class: %v", err)
	}

	return NewEnrollmentService(enrollStore, classStore, userStore), enrollStore, classStore, userStore
}

func TestEnrollSuccess(t *testing.T) {
	svc, store, classStore, _ := newEnrollmentServiceFixture(t)

	classID := int64(1)
	detail, err := svc.Enroll(context.Background(), classID, "student-1")
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	if detail.StudentID != "student-1" || detail.ClassID != classID {
		t.Errorf("detail = %+v, want student-1 in class %d", detail.Enrollment, classID)
	}
	enrolled, _ := store.Exists(context.Background(), "student-1", classID)
	if !enrolled {
		t.Error("enrollment not recorded")
	}
	if _, ok := classStore.classes[classID]; !ok {
		t.Fatal("fixture class missing")
	}
}

func TestEnrollUnknownClass(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	_, err := svc.Enroll(context.Background(), 999, "student-1")
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Errorf("Enroll() error = %v, want ErrClassNotFound", err)
	}
}

func TestEnrollUnknownStudent(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	_, err := svc.Enroll(context.Background(), 1, "nobody")
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Enroll() error = %v, want ErrStudentNotFound", err)
	}
}

func TestEnrollDuplicate(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	if _, err := svc.Enroll(context.Background(), 1, "student-1"); err != nil {
		t.Fatalf("first Enroll() error = %v", err)
	}

	_, err := svc.Enroll(context.Background(), 1, "student-1")
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("second Enroll() error = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollDuplicateSurfacedByConstraint(t *testing.T) {
	// When the pre-check misses (concurrent request), the create path still
	// reports the same conflict.
	svc, store, _, _ := newEnrollmentServiceFixture(t)

	if _, err := svc.Enroll(context.Background(), 1, "student-1"); err != nil {
		t.Fatalf("first Enroll() error = %v", err)
	}

	// Simulate the race: Exists says no, Create hits the unique constraint.
	store.existsBlind = true

	_, err := svc.Enroll(context.Background(), 1, "student-1")
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("Enroll() error = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestJoinByInviteCode(t *testing.T) {
	svc, store, _, _ := newEnrollmentServiceFixture(t)

	detail, err := svc.JoinByInviteCode(context.Background(), "AB12CD34", "student-1")
	if err != nil {
		t.Fatalf("JoinByInviteCode() error = %v", err)
	}
	if detail.ClassID != 1 {
		t.Errorf("ClassID = %d, want 1", detail.ClassID)
	}
	enrolled, _ := store.Exists(context.Background(), "student-1", 1)
	if !enrolled {
		t.Error("join did not record the enrollment")
	}
}

func TestJoinByInviteCodeUnknownCode(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	_, err := svc.JoinByInviteCode(context.Background(), "ZZZZZZZZ", "student-1")
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Errorf("JoinByInviteCode() error = %v, want ErrClassNotFound", err)
	}
}

func TestJoinByInviteCodeDuplicate(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	if _, err := svc.Enroll(context.Background(), 1, "student-1"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	_, err := svc.JoinByInviteCode(context.Background(), "AB12CD34", "student-1")
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("JoinByInviteCode() error = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestListEnrollmentsClampsAndWraps(t *testing.T) {
	svc, store, _, _ := newEnrollmentServiceFixture(t)
	store.listTotal = 15

	items, pagination, err := svc.ListEnrollments(context.Background(), dto.EnrollmentFilter{Page: 0, Limit: -1})
	if err != nil {
		t.Fatalf("ListEnrollments() error = %v", err)
	}

	if items == nil {
		t.Error("items is nil, want empty slice")
	}
	if store.lastFilter.Page != 1 || store.lastFilter.Limit != 10 {
		t.Errorf("filter = page %d limit %d, want page 1 limit 10", store.lastFilter.Page, store.lastFilter.Limit)
	}
	if pagination.Total != 15 || pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v, want total 15 across 2 pages", pagination)
	}
}

func TestGetEnrollmentDetailNotFound(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	_, err := svc.GetEnrollmentDetail(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("GetEnrollmentDetail() error = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestDeleteEnrollmentNotFound(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	err := svc.DeleteEnrollment(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("DeleteEnrollment() error = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestDeleteEnrollmentThenReenroll(t *testing.T) {
	svc, _, _, _ := newEnrollmentServiceFixture(t)

	detail, err := svc.Enroll(context.Background(), 1, "student-1")
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if err := svc.DeleteEnrollment(context.Background(), detail.ID); err != nil {
		t.Fatalf("DeleteEnrollment() error = %v", err)
	}

	// Unenrolling frees the (student, class) pair for a fresh enrollment.
	if _, err := svc.Enroll(context.Background(), 1, "student-1"); err != nil {
		t.Errorf("re-Enroll() error = %v", err)
	}
}
