// Package businessflow contains the business logic for the visitor register.
package businessflow

import (
	"time"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for logging and audit trails
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// AuthenticatedUser is the identity the auth middleware attaches to a request.
type AuthenticatedUser struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin reports whether the identity carries the admin role.
func (u AuthenticatedUser) IsAdmin() bool {
	return u.Role == string(models.UserRoleAdmin)
}

// ToVisitorResponse converts a visitor model to its wire representation.
// The duration is rendered in the historical "N dakika" textual form.
func ToVisitorResponse(visitor models.Visitor) dto.VisitorResponse {
	resp := dto.VisitorResponse{
		ID:             visitor.ID.String(),
		NationalID:     visitor.NationalID,
		FirstName:      visitor.FirstName,
		LastName:       visitor.LastName,
		BirthYear:      visitor.BirthYear,
		ReasonForVisit: visitor.ReasonForVisit,
		EntryTime:      visitor.EntryTime.Format(time.RFC3339),
		VisitDuration:  visitor.VisitDuration(),
		IsActive:       visitor.IsActive,
	}

	if visitor.ExitTime != nil {
		exit := visitor.ExitTime.Format(time.RFC3339)
		resp.ExitTime = &exit
	}

	return resp
}

// ToVisitorResponses converts a slice of visitor models, preserving order.
func ToVisitorResponses(visitors []*models.Visitor) []dto.VisitorResponse {
	responses := make([]dto.VisitorResponse, 0, len(visitors))
	for _, visitor := range visitors {
		responses = append(responses, ToVisitorResponse(*visitor))
	}
	return responses
}

// ToUserDTO converts a user model to its wire representation (no password hash).
func ToUserDTO(user models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// ToAuthUserDTO converts a user model to the identity payload echoed on login.
func ToAuthUserDTO(user models.User) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     string(user.Role),
	}
}
