package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/app/services"
	"github.com/kerem/classora/internal/pkg/apperrors"
)

type stubDepartmentStore struct {
	departments map[int64]*models.Department
	subjectRefs map[int64]bool
}

func (s *stubDepartmentStore) Create(_ context.Context, department *models.Department) error {
	s.departments[department.ID] = department
	return nil
}

func (s *stubDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	return s.departments[id], nil
}

func (s *stubDepartmentStore) GetAll(_ context.Context) ([]*models.Department, error) {
	all := make([]*models.Department, 0, len(s.departments))
	for _, d := range s.departments {
		all = append(all, d)
	}
	return all, nil
}

func (s *stubDepartmentStore) Update(_ context.Context, department *models.Department) error {
	s.departments[department.ID] = department
	return nil
}

func (s *stubDepartmentStore) HasSubjects(_ context.Context, id int64) (bool, error) {
	return s.subjectRefs[id], nil
}

func (s *stubDepartmentStore) Delete(_ context.Context, id int64) error {
	delete(s.departments, id)
	return nil
}

type stubSubjectStore struct {
	subjects   map[int64]*models.Subject
	nextID     int64
	lastFilter dto.SubjectFilter
}

func (s *stubSubjectStore) Search(_ context.Context, filter dto.SubjectFilter) ([]*models.Subject, int64, error) {
	s.lastFilter = filter
	matched := make([]*models.Subject, 0, len(s.subjects))
	for _, subj := range s.subjects {
		if filter.Search != "" && !strings.Contains(strings.ToLower(subj.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, subj)
	}
	return matched, int64(len(matched)), nil
}

func (s *stubSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	return s.subjects[id], nil
}

func (s *stubSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	for _, existing := range s.subjects {
		if existing.Code == subject.Code {
			return apperrors.ErrSubjectAlreadyExists
		}
	}
	s.nextID++
	subject.ID = s.nextID
	s.subjects[subject.ID] = subject
	return nil
}

func (s *stubSubjectStore) Update(_ context.Context, subject *models.Subject) error {
	if _, ok := s.subjects[subject.ID]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	s.subjects[subject.ID] = subject
	return nil
}

func (s *stubSubjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(s.subjects, id)
	return nil
}

func newSubjectRouter(t *testing.T) (*gin.Engine, *stubSubjectStore) {
	t.Helper()

	deptStore := &stubDepartmentStore{
		departments: map[int64]*models.Department{
			1: {ID: 1, Code: "MATH", Name: "Mathematics"},
		},
		subjectRefs: make(map[int64]bool),
	}
	subjStore := &stubSubjectStore{subjects: make(map[int64]*models.Subject)}

	svc := services.NewSubjectService(subjStore, deptStore)
	ctrl := NewSubjectController(svc)

	router := gin.New()
	api := router.Group("/api/v1/subjects")
	api.GET("", ctrl.SearchSubjects)
	api.GET("/:id", ctrl.GetSubjectByID)
	api.POST("", ctrl.CreateSubject)
	api.PUT("/:id", ctrl.UpdateSubject)
	api.DELETE("/:id", ctrl.DeleteSubject)

	return router, subjStore
}

func TestSearchSubjectsQueryParams(t *testing.T) {
	router, store := newSubjectRouter(t)
	store.subjects[1] = &models.Subject{ID: 1, DepartmentID: 1, Code: "ALG", Name: "Algebra"}
	store.subjects[2] = &models.Subject{ID: 2, DepartmentID: 1, Code: "GEO", Name: "Geometry"}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/subjects?search=alge&department=math&page=2&limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	if store.lastFilter.Search != "alge" || store.lastFilter.Department != "math" {
		t.Errorf("filter = %+v, want search and department forwarded", store.lastFilter)
	}
	if store.lastFilter.Page != 2 || store.lastFilter.Limit != 5 {
		t.Errorf("filter = page %d limit %d, want page 2 limit 5", store.lastFilter.Page, store.lastFilter.Limit)
	}

	var resp struct {
		Data       []models.Subject   `json:"data"`
		Pagination dto.PaginationInfo `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "Algebra" {
		t.Errorf("data = %+v, want only Algebra", resp.Data)
	}
}

func TestSearchSubjectsInvalidPaginationFallsBack(t *testing.T) {
	router, store := newSubjectRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/subjects?page=abc&limit=-4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.lastFilter.Page != 1 || store.lastFilter.Limit != 10 {
		t.Errorf("filter = page %d limit %d, want defaults", store.lastFilter.Page, store.lastFilter.Limit)
	}
}

func TestCreateSubjectCreated(t *testing.T) {
	router, _ := newSubjectRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/subjects", dto.CreateSubjectRequest{
		DepartmentID: 1,
		Name:         "Algebra",
		Code:         "alg",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.Subject `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.Code != "ALG" {
		t.Errorf("Code = %q, want normalized %q", resp.Data.Code, "ALG")
	}
	if resp.Data.Department == nil || resp.Data.Department.Code != "MATH" {
		t.Errorf("Department = %+v, want MATH attached", resp.Data.Department)
	}
}

func TestCreateSubjectUnknownDepartmentStatus(t *testing.T) {
	router, _ := newSubjectRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/subjects", dto.CreateSubjectRequest{
		DepartmentID: 999,
		Name:         "Algebra",
		Code:         "ALG",
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateSubjectDuplicateCodeStatus(t *testing.T) {
	router, _ := newSubjectRouter(t)

	req := dto.CreateSubjectRequest{DepartmentID: 1, Name: "Algebra", Code: "ALG"}
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/subjects", req); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/subjects", req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetSubjectByIDInvalid(t *testing.T) {
	router, _ := newSubjectRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/subjects/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteSubjectNoContent(t *testing.T) {
	router, store := newSubjectRouter(t)
	store.subjects[1] = &models.Subject{ID: 1, DepartmentID: 1, Code: "ALG", Name: "Algebra"}

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/subjects/1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(store.subjects) != 0 {
		t.Error("subject still stored after delete")
	}
}
