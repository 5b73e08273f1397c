package dto

// APIResponse is the standard envelope for single-object responses
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse is the standard envelope for paginated list responses
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewAPIResponse creates a single-object response envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}

// NewPaginatedResponse creates a paginated list response envelope
func NewPaginatedResponse(data interface{}, pagination PaginationInfo) PaginatedResponse {
	return PaginatedResponse{Data: data, Pagination: pagination}
}
