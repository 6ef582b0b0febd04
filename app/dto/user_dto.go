package dto

// ListUsersQuery represents the query parameters of the paginated user list
type ListUsersQuery struct {
	Search string `query:"search"`
	Role   string `query:"role"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// UserDTO is a user account without its password hash
type UserDTO struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username  string `json:"username" example:"frontdesk"`
	Role      string `json:"role" example:"staff"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// PaginationDTO describes the page window of a user list response
type PaginationDTO struct {
	TotalUsers  int64 `json:"totalUsers" example:"42"`
	TotalPages  int   `json:"totalPages" example:"5"`
	CurrentPage int   `json:"currentPage" example:"1"`
	PerPage     int   `json:"perPage" example:"10"`
}

// ListUsersResponse is the paginated user list envelope
type ListUsersResponse struct {
	Users      []UserDTO     `json:"users"`
	Pagination PaginationDTO `json:"pagination"`
}

// CreateUserRequest represents the payload for creating an account
type CreateUserRequest struct {
	Username string `json:"username" validate:"required" example:"frontdesk"`
	Password string `json:"password" validate:"required,min=6" example:"SecurePass123!"`
	Role     string `json:"role" validate:"required,oneof=admin staff" example:"staff"`
}

// UpdateUserRequest represents a partial account update; nil fields are untouched
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1" example:"frontdesk"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6" example:"SecurePass123!"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff" example:"staff"`
}
