package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Code        string  `json:"code" binding:"required,max=50"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Code        string  `json:"code" binding:"required,max=50"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}
