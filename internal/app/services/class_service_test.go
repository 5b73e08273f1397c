package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/pkg/apperrors"
)

var inviteCodePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func newClassServiceFixture(t *testing.T) (*ClassService, *fakeClassStore, *models.Subject, *models.PublicUser) {
	t.Helper()

	subjStore := newFakeSubjectStore()
	subject := &models.Subject{DepartmentID: 1, Code: "ALG", Name: "Algebra"}
	if err := subjStore.Create(context.Background(), subject); err != nil {
		t.Fatalf("seeding subject: %v", err)
	}

	userStore := newFakeUserStore()
	teacher := &models.PublicUser{ID: "user-1", Name: "Ada", Role: models.RoleTeacher}
	userStore.users[teacher.ID] = teacher

	classStore := newFakeClassStore()
	return NewClassService(classStore, subjStore, userStore), classStore, subject, teacher
}

func TestCreateClassGeneratesInviteCode(t *testing.T) {
	svc, _, subject, teacher := newClassServiceFixture(t)

	class := &models.Class{SubjectID: subject.ID, TeacherID: teacher.ID, Name: "Algebra 101"}
	if err := svc.CreateClass(context.Background(), class); err != nil {
		t.Fatalf("CreateClass() error = %v", err)
	}

	if !inviteCodePattern.MatchString(class.InviteCode) {
		t.Errorf("InviteCode = %q, want 8 uppercase hex characters", class.InviteCode)
	}
	if class.Capacity != models.DefaultClassCapacity {
		t.Errorf("Capacity = %d, want default %d", class.Capacity, models.DefaultClassCapacity)
	}
	if class.Status != models.ClassStatusActive {
		t.Errorf("Status = %q, want %q", class.Status, models.ClassStatusActive)
	}
	if class.Subject == nil || class.Teacher == nil {
		t.Error("subject and teacher relations not attached after create")
	}
}

func TestCreateClassRetriesOnInviteCodeCollision(t *testing.T) {
	svc, store, subject, teacher := newClassServiceFixture(t)
	store.takenCodes = 2

	class := &models.Class{SubjectID: subject.ID, TeacherID: teacher.ID, Name: "Algebra 101"}
	if err := svc.CreateClass(context.Background(), class); err != nil {
		t.Fatalf("CreateClass() error = %v", err)
	}
	if store.attempts != 3 {
		t.Errorf("create attempts = %d, want 3", store.attempts)
	}
}

func TestCreateClassGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, store, subject, teacher := newClassServiceFixture(t)
	store.takenCodes = 10

	err := svc.CreateClass(context.Background(), &models.Class{
		SubjectID: subject.ID,
		TeacherID: teacher.ID,
		Name:      "Algebra 101",
	})
	if !errors.Is(err, apperrors.ErrInviteCodeTaken) {
		t.Errorf("CreateClass() error = %v, want ErrInviteCodeTaken", err)
	}
}

func TestCreateClassUnknownSubject(t *testing.T) {
	svc, _, _, teacher := newClassServiceFixture(t)

	err := svc.CreateClass(context.Background(), &models.Class{
		SubjectID: 999,
		TeacherID: teacher.ID,
		Name:      "Ghost class",
	})
	if !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Errorf("CreateClass() error = %v, want ErrSubjectNotFound", err)
	}
}

func TestCreateClassUnknownTeacher(t *testing.T) {
	svc, _, subject, _ := newClassServiceFixture(t)

	err := svc.CreateClass(context.Background(), &models.Class{
		SubjectID: subject.ID,
		TeacherID: "nobody",
		Name:      "Ghost class",
	})
	if !errors.Is(err, apperrors.ErrTeacherNotFound) {
		t.Errorf("CreateClass() error = %v, want ErrTeacherNotFound", err)
	}
}

func TestGetClassByIDAnnotatesRelations(t *testing.T) {
	svc, _, subject, teacher := newClassServiceFixture(t)

	class := &models.Class{SubjectID: subject.ID, TeacherID: teacher.ID, Name: "Algebra 101"}
	if err := svc.CreateClass(context.Background(), class); err != nil {
		t.Fatalf("CreateClass() error = %v", err)
	}

	got, err := svc.GetClassByID(context.Background(), class.ID)
	if err != nil {
		t.Fatalf("GetClassByID() error = %v", err)
	}
	if got.Subject == nil || got.Subject.ID != subject.ID {
		t.Errorf("Subject = %+v, want subject %d", got.Subject, subject.ID)
	}
	if got.Teacher == nil || got.Teacher.ID != teacher.ID {
		t.Errorf("Teacher = %+v, want teacher %q", got.Teacher, teacher.ID)
	}
}

func TestGetClassByIDNotFound(t *testing.T) {
	svc, _, _, _ := newClassServiceFixture(t)

	_, err := svc.GetClassByID(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Errorf("GetClassByID() error = %v, want ErrClassNotFound", err)
	}
}

func TestGetClassesBySubject(t *testing.T) {
	svc, _, subject, teacher := newClassServiceFixture(t)

	for _, name := range []string{"Algebra 101", "Algebra 102"} {
		class := &models.Class{SubjectID: subject.ID, TeacherID: teacher.ID, Name: name}
		if err := svc.CreateClass(context.Background(), class); err != nil {
			t.Fatalf("CreateClass(%q) error = %v", name, err)
		}
	}

	classes, err := svc.GetClassesBySubject(context.Background(), subject.ID)
	if err != nil {
		t.Fatalf("GetClassesBySubject() error = %v", err)
	}
	if len(classes) != 2 {
		t.Errorf("len(classes) = %d, want 2", len(classes))
	}
}

func TestGetClassesBySubjectUnknownSubject(t *testing.T) {
	svc, _, _, _ := newClassServiceFixture(t)

	_, err := svc.GetClassesBySubject(context.Background(), 999)
	if !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Errorf("GetClassesBySubject() error = %v, want ErrSubjectNotFound", err)
	}
}

func TestDeleteClassNotFound(t *testing.T) {
	svc, _, _, _ := newClassServiceFixture(t)

	err := svc.DeleteClass(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Errorf("DeleteClass() error = %v, want ErrClassNotFound", err)
	}
}
