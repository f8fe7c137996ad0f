package models

import "time"

// ===== AUTH RESPONSES =====

// TokenPair carries a freshly issued access/refresh token set. Never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResponse struct {
	User  *User     `json:"user"`
	Token TokenPair `json:"token"`
}

type ActivationResponse struct {
	Message string    `json:"message"`
	Token   TokenPair `json:"token"`
}

// ===== PROFILE RESPONSES =====

type TeacherDetail struct {
	Teacher
	DepartmentName *string `json:"department_name,omitempty"`
}

type StudentDetail struct {
	Student
	CourseName *string `json:"course_name,omitempty"`
}

type ProvisionStudentResponse struct {
	Student *Student `json:"student"`
	Message string   `json:"message"`
}

// ===== PAGINATION =====

type ListParams struct {
	Page    int    `json:"page" validate:"min=0"`
	Size    int    `json:"size" validate:"min=1,max=100"`
	Search  string `json:"search"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

type PaginatedResponse struct {
	Content          interface{} `json:"content"`
	TotalElements    int64       `json:"total_elements"`
	TotalPages       int         `json:"total_pages"`
	Size             int         `json:"size"`
	Page             int         `json:"page"`
	First            bool        `json:"first"`
	Last             bool        `json:"last"`
	NumberOfElements int         `json:"number_of_elements"`
	Empty            bool        `json:"empty"`
}

// NewPaginatedResponse fills the page envelope from a content slice and totals.
func NewPaginatedResponse(content interface{}, total int64, page, size, count int) *PaginatedResponse {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &PaginatedResponse{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             size,
		Page:             page,
		First:            page == 0,
		Last:             page >= totalPages-1,
		NumberOfElements: count,
		Empty:            count == 0,
	}
}

// ===== GENERIC RESPONSES =====

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
