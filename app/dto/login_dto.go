package dto

// LoginRequest represents the request payload for staff login
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"admin"`
	Password string `json:"password" validate:"required" example:"SecurePass123!"`
}

// AuthUserDTO is the identity payload carried in the token and echoed on login
type AuthUserDTO struct {
	ID       string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username string `json:"username" example:"admin"`
	Role     string `json:"role" example:"admin"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	AccessToken string      `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User        AuthUserDTO `json:"user"`
}
