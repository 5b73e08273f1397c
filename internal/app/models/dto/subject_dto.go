package dto

// SubjectFilter carries the catalog search inputs. Both filters are optional
// and combine conjunctively when present.
type SubjectFilter struct {
	Search     string // Case-insensitive substring on subject name or code
	Department string // Case-insensitive substring on the joined department name
	Page       int
	Limit      int
}

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	DepartmentID int64   `json:"departmentId" binding:"required,min=1"`
	Name         string  `json:"name" binding:"required,max=255"`
	Code         string  `json:"code" binding:"required,max=50"`
	Description  *string `json:"description"`
}

// UpdateSubjectRequest represents subject update data
type UpdateSubjectRequest struct {
	DepartmentID int64   `json:"departmentId" binding:"required,min=1"`
	Name         string  `json:"name" binding:"required,max=255"`
	Code         string  `json:"code" binding:"required,max=50"`
	Description  *string `json:"description"`
}
