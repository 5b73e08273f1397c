package services

import (
	"context"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/pkg/apperrors"
)

// In-memory store fakes. Each fake mimics the error contract of its pgx
// counterpart closely enough for the business rules to be exercised without
// a database.

type fakeDepartmentStore struct {
	departments map[int64]*models.Department
	subjectRefs map[int64]bool
	nextID      int64
	err         error
}

func newFakeDepartmentStore() *fakeDepartmentStore {
	return &fakeDepartmentStore{
		departments: make(map[int64]*models.Department),
		subjectRefs: make(map[int64]bool),
		nextID:      1,
	}
}

func (f *fakeDepartmentStore) Create(_ context.Context, department *models.Department) error {
	if f.err != nil {
		return f.err
	}
	for _, d := range f.departments {
		if d.Code == department.Code {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	department.ID = f.nextID
	f.nextID++
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.departments[id], nil
}

func (f *fakeDepartmentStore) GetAll(_ context.Context) ([]*models.Department, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := make([]*models.Department, 0, len(f.departments))
	for _, d := range f.departments {
		all = append(all, d)
	}
	return all, nil
}

func (f *fakeDepartmentStore) Update(_ context.Context, department *models.Department) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.departments[department.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentStore) HasSubjects(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.subjectRefs[id], nil
}

func (f *fakeDepartmentStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if f.subjectRefs[id] {
		return apperrors.ErrDepartmentHasSubjects
	}
	if _, ok := f.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

type fakeSubjectStore struct {
	subjects    map[int64]*models.Subject
	nextID      int64
	searchTotal int64
	lastFilter  dto.SubjectFilter
	err         error
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{
		subjects: make(map[int64]*models.Subject),
		nextID:   1,
	}
}

func (f *fakeSubjectStore) Search(_ context.Context, filter dto.SubjectFilter) ([]*models.Subject, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.lastFilter = filter
	results := make([]*models.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		results = append(results, s)
	}
	total := f.searchTotal
	if total == 0 {
		total = int64(len(results))
	}
	return results, total, nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subjects[id], nil
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	if f.err != nil {
		return f.err
	}
	for _, s := range f.subjects {
		if s.Code == subject.Code {
			return apperrors.ErrSubjectAlreadyExists
		}
	}
	subject.ID = f.nextID
	f.nextID++
	f.subjects[subject.ID] = subject
	return nil
}

func (f *fakeSubjectStore) Update(_ context.Context, subject *models.Subject) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.subjects[subject.ID]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	f.subjects[subject.ID] = subject
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(f.subjects, id)
	return nil
}

type fakeClassStore struct {
	classes map[int64]*models.Class
	nextID  int64
	// takenCodes forces invite-code collisions for the first len(takenCodes)
	// create attempts.
	takenCodes int
	attempts   int
	err        error
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{
		classes: make(map[int64]*models.Class),
		nextID:  1,
	}
}

func (f *fakeClassStore) Create(_ context.Context, class *models.Class) error {
	if f.err != nil {
		return f.err
	}
	f.attempts++
	if f.attempts <= f.takenCodes {
		return apperrors.ErrInviteCodeTaken
	}
	class.ID = f.nextID
	f.nextID++
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassStore) GetByID(_ context.Context, id int64) (*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.classes[id], nil
}

func (f *fakeClassStore) GetByInviteCode(_ context.Context, inviteCode string) (*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.classes {
		if c.InviteCode == inviteCode {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClassStore) GetBySubjectID(_ context.Context, subjectID int64) ([]*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	var classes []*models.Class
	for _, c := range f.classes {
		if c.SubjectID == subjectID {
			classes = append(classes, c)
		}
	}
	return classes, nil
}

func (f *fakeClassStore) Update(_ context.Context, class *models.Class) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.classes[class.ID]; !ok {
		return apperrors.ErrClassNotFound
	}
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(f.classes, id)
	return nil
}

type enrollmentKey struct {
	studentID string
	classID   int64
}

type fakeEnrollmentStore struct {
	enrollments map[int64]*models.Enrollment
	pairs       map[enrollmentKey]bool
	details     map[int64]*models.EnrollmentDetail
	nextID      int64
	listItems   []*models.EnrollmentListItem
	listTotal   int64
	lastFilter  dto.EnrollmentFilter
	// existsBlind makes Exists always report false, simulating the race
	// where the pre-check misses and the unique constraint catches it.
	existsBlind bool
	err         error
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		enrollments: make(map[int64]*models.Enrollment),
		pairs:       make(map[enrollmentKey]bool),
		details:     make(map[int64]*models.EnrollmentDetail),
		nextID:      1,
	}
}

func (f *fakeEnrollmentStore) List(_ context.Context, filter dto.EnrollmentFilter) ([]*models.EnrollmentListItem, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.lastFilter = filter
	return f.listItems, f.listTotal, nil
}

func (f *fakeEnrollmentStore) GetDetail(_ context.Context, id int64) (*models.EnrollmentDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	// Created through the fake: synthesize a minimal detail the way the
	// joined query would.
	if e, ok := f.enrollments[id]; ok {
		return &models.EnrollmentDetail{Enrollment: *e}, nil
	}
	return nil, nil
}

func (f *fakeEnrollmentStore) Exists(_ context.Context, studentID string, classID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.existsBlind {
		return false, nil
	}
	return f.pairs[enrollmentKey{studentID, classID}], nil
}

func (f *fakeEnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	if f.err != nil {
		return f.err
	}
	key := enrollmentKey{enrollment.StudentID, enrollment.ClassID}
	if f.pairs[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	enrollment.ID = f.nextID
	f.nextID++
	f.enrollments[enrollment.ID] = enrollment
	f.pairs[key] = true
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	e, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.pairs, enrollmentKey{e.StudentID, e.ClassID})
	delete(f.enrollments, id)
	return nil
}

type fakeUserStore struct {
	users map[string]*models.PublicUser
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.PublicUser)}
}

func (f *fakeUserStore) GetPublicByID(_ context.Context, id string) (*models.PublicUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserStore) Exists(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.users[id]
	return ok, nil
}
