package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kerem/classora/internal/app/models/dto"
	"github.com/kerem/classora/internal/app/services"
	"github.com/kerem/classora/internal/middleware"
	"github.com/kerem/classora/internal/pkg/helpers"
)

// EnrollmentController handles enrollment operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// ListEnrollments handles the enrollment listing
// @Summary List enrollments
// @Description Retrieves enrollments with optional class/student filtering, each annotated with its class and subject
// @Tags enrollments
// @Produce json
// @Param classId query int false "Filter by class ID"
// @Param studentId query string false "Filter by student ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse{data=[]models.EnrollmentListItem}
// @Failure 400 {object} dto.ErrorResponse "Invalid classId"
// @Failure 500 {object} dto.ErrorResponse
// @Router /enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	filter := dto.EnrollmentFilter{
		StudentID: ctx.Query("studentId"),
		Page:      page,
		Limit:     limit,
	}

	if classIDStr := ctx.Query("classId"); classIDStr != "" {
		classID, err := strconv.ParseInt(classIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid classId").WithField("classId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.ClassID = &classID
	}

	items, pagination, err := c.enrollmentService.ListEnrollments(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(items, pagination))
}

// GetEnrollmentByID retrieves the fully joined enrollment detail
// @Summary Get enrollment details
// @Description Retrieves one enrollment joined with its class, subject, department and teacher
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.EnrollmentDetail}
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Enrollment ID must be a valid number")
	if !ok {
		return
	}

	detail, err := c.enrollmentService.GetEnrollmentDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// CreateEnrollment handles direct enrollment
// @Summary Enroll a student in a class
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.APIResponse{data=models.EnrollmentDetail}
// @Failure 400 {object} dto.ErrorResponse "Missing classId or studentId"
// @Failure 404 {object} dto.ErrorResponse "Class or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, "classId and studentId are required", err)
		return
	}

	detail, err := c.enrollmentService.Enroll(ctx, req.ClassID, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(detail))
}

// JoinClass handles self-service enrollment via class invite code
// @Summary Join a class by invite code
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.JoinClassRequest true "Join information"
// @Success 201 {object} dto.APIResponse{data=models.EnrollmentDetail}
// @Failure 400 {object} dto.ErrorResponse "Missing inviteCode or studentId"
// @Failure 404 {object} dto.ErrorResponse "Class or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Router /enrollments/join [post]
func (c *EnrollmentController) JoinClass(ctx *gin.Context) {
	var req dto.JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, "inviteCode and studentId are required", err)
		return
	}

	detail, err := c.enrollmentService.JoinByInviteCode(ctx, req.InviteCode, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(detail))
}

// DeleteEnrollment removes an enrollment by ID
// @Summary Delete an enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 204 "Enrollment deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Enrollment ID must be a valid number")
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
