package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kerem/classora/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	departmentController *controllers.DepartmentController,
	subjectController *controllers.SubjectController,
	classController *controllers.ClassController,
	enrollmentController *controllers.EnrollmentController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
		departments.POST("", departmentController.CreateDepartment)
		departments.PUT("/:id", departmentController.UpdateDepartment)
		departments.DELETE("/:id", departmentController.DeleteDepartment)
	}

	subjects := v1.Group("/subjects")
	{
		subjects.GET("", subjectController.SearchSubjects)
		subjects.GET("/:id", subjectController.GetSubjectByID)
		subjects.POST("", subjectController.CreateSubject)
		subjects.PUT("/:id", subjectController.UpdateSubject)
		subjects.DELETE("/:id", subjectController.DeleteSubject)
		subjects.GET("/:id/classes", classController.GetClassesBySubject)
	}

	classes := v1.Group("/classes")
	{
		classes.GET("/:id", classController.GetClassByID)
		classes.POST("", classController.CreateClass)
		classes.PUT("/:id", classController.UpdateClass)
		classes.DELETE("/:id", classController.DeleteClass)
	}

	enrollments := v1.Group("/enrollments")
	{
		enrollments.GET("", enrollmentController.ListEnrollments)
		enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.POST("/join", enrollmentController.JoinClass)
		enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
	}
}
