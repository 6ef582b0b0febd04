package handlers

import (
	"log"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: newValidator(),
	}
}

// Login authenticates a user and returns an access token. An unknown username
// and a wrong password produce the identical response.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
			Message: "Geçersiz kullanıcı adı veya şifre",
		})
	}

	result, err := h.authFlow.Login(createRequestContext(c, "/api/login"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidCredentials(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Message: "Geçersiz kullanıcı adı veya şifre",
			})
		}
		log.Printf("Login failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
