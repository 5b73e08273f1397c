package dto

import "github.com/kerem/classora/internal/app/models"

// CreateClassRequest represents class creation data. The invite code is
// generated server-side and never accepted from the caller.
type CreateClassRequest struct {
	SubjectID   int64                  `json:"subjectId" binding:"required,min=1"`
	TeacherID   string                 `json:"teacherId" binding:"required"`
	Name        string                 `json:"name" binding:"required,max=255"`
	Description *string                `json:"description"`
	BannerURL   *string                `json:"bannerUrl"`
	Capacity    *int                   `json:"capacity" binding:"omitempty,min=1"`
	Schedules   []models.ClassSchedule `json:"schedules" binding:"omitempty,dive"`
}

// UpdateClassRequest represents class update data
type UpdateClassRequest struct {
	Name        string                 `json:"name" binding:"required,max=255"`
	Description *string                `json:"description"`
	BannerURL   *string                `json:"bannerUrl"`
	Capacity    *int                   `json:"capacity" binding:"omitempty,min=1"`
	Status      *models.ClassStatus    `json:"status" binding:"omitempty,oneof=active inactive archived"`
	Schedules   []models.ClassSchedule `json:"schedules" binding:"omitempty,dive"`
}
