// Package dto contains Data Transfer Objects for API request and response structures
package dto

// MessageResponse is the generic `{"message": ...}` body used for simple
// successes and for every error the API returns.
type MessageResponse struct {
	Message string `json:"message" example:"Doğrulama başarılı"`
}

// FieldError is one violated field in a validation failure.
type FieldError struct {
	Field   string `json:"field" example:"tc_kimlik"`
	Message string `json:"message" example:"TC Kimlik 11 haneli olmalıdır."`
}

// ValidationErrorResponse lists every violated field, not just the first.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}
