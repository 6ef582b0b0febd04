// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/app/services"
	"github.com/front-desk/visitor-register/utils"
	"github.com/gofiber/fiber/v3"
)

// Context keys for values the auth middleware attaches to a request
const (
	UserIDKey      = "user_id"
	UsernameKey    = "username"
	RoleKey        = "role"
	TokenClaimsKey = "token_claims"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the bearer token and attaches the authenticated
// identity to the request context. A missing header and an invalid or expired
// token both reject with 401; only the message differs.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Message: "Authorization header is required",
			})
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
			})
		}

		// Extract the token (remove "Bearer " prefix)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Message: "Access token is required",
			})
		}

		// Validate the token
		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			message := "Invalid access token"
			if errors.Is(err, services.ErrTokenExpired) {
				message = "Access token has expired"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Message: message,
			})
		}

		// Store user information in context for downstream handlers
		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UsernameKey, claims.Username)
		c.Locals(RoleKey, claims.Role)
		c.Locals(TokenClaimsKey, claims)

		// Continue to the next handler
		return c.Next()
	}
}

// RequireAdmin gates a route to admin-role identities. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		if role != utils.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{
				Message: "Forbidden: Admins only",
			})
		}

		return c.Next()
	}
}
