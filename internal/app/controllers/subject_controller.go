package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kerem/classora/internal/app/models"
	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/app/services"
	"github.com/kerem/classora/internal/middleware"
	"github.com/kerem/classora/internal/pkg/helpers"
)

// SubjectController handles subject catalog operations
type SubjectController struct {
	subjectService *services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService *services.SubjectService) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
	}
}

// SearchSubjects handles the catalog search
// @Summary Search subjects
// @Description Retrieves subjects with optional free-text and department filtering, paginated
// @Tags subjects
// @Produce json
// @Param search query string false "Substring match on subject name or code (case-insensitive)"
// @Param department query string false "Substring match on department name (case-insensitive)"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse{data=[]models.Subject}
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects [get]
func (c *SubjectController) SearchSubjects(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	filter := dto.SubjectFilter{
		Search:     ctx.Query("search"),
		Department: ctx.Query("department"),
		Page:       page,
		Limit:      limit,
	}

	subjects, pagination, err := c.subjectService.SearchSubjects(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(subjects, pagination))
}

// GetSubjectByID retrieves a subject by ID
// @Summary Get subject by ID
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubjectByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject ID must be a valid number")
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubjectByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// CreateSubject handles subject creation
// @Summary Create a new subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 201 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Subject code already exists"
// @Router /subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, "Invalid subject data", err)
		return
	}

	subject := &models.Subject{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
	}

	if err := c.subjectService.CreateSubject(ctx, subject); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subject))
}

// UpdateSubject handles subject update
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateSubjectRequest true "Updated subject information"
// @Success 200 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject ID must be a valid number")
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, "Invalid subject data", err)
		return
	}

	subject := &models.Subject{
		ID:           id,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
	}

	if err := c.subjectService.UpdateSubject(ctx, subject); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// DeleteSubject handles subject deletion; classes and enrollments cascade
// @Summary Delete a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 204 "Subject deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject ID must be a valid number")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseIDParam parses a numeric path parameter, answering 400 on failure
func parseIDParam(ctx *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// respondValidationError answers 400 with binding failure details
func respondValidationError(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
