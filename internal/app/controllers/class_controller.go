package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/app/services"
	"github.com/kerem/classora/internal/middleware"
)

// ClassController handles class lifecycle operations
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass handles class creation; the invite code is generated server-side
// @Summary Create a new class
// @Tags classes
// @Accept json
// @Produce json
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.Class}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject or teacher not found"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, "Invalid class data", err)
		return
	}

	class := &models.Class{
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		Name:        req.Name,
		Description: req.Description,
		BannerURL:   req.BannerURL,
		Schedules:   req.Schedules,
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}

	if err := c.classService.CreateClass(ctx, class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(class))
}

// GetClassByID retrieves a class with its subject and teacher
// @Summary Get class by ID
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.Class}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /classes/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Class ID must be a valid number")
	if !ok {
		return
	}

	class, err := c.classService.GetClassByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// GetClassesBySubject lists all classes of a subject
// @Summary List classes of a subject
// @Tags classes
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/classes [get]
func (c *ClassController) GetClassesBySubject(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id", "Subject ID must be a valid number")
	if !ok {
		return
	}

	classes, err := c.classService.GetClassesBySubject(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes))
}

// UpdateClass handles class update
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Updated class information"
// @Success 200 {object} dto.APIResponse{data=models.Class}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Class ID must be a valid number")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, "Invalid class data", err)
		return
	}

	// Load current state so unset fields keep their values
	class, err := c.classService.GetClassByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class.Name = req.Name
	class.Description = req.Description
	class.BannerURL = req.BannerURL
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	if req.Status != nil {
		class.Status = *req.Status
	}
	if req.Schedules != nil {
		class.Schedules = req.Schedules
	}

	if err := c.classService.UpdateClass(ctx, class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// DeleteClass handles class deletion; enrollments cascade
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 204 "Class deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Class ID must be a valid number")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
