package handlers

import (
	"log"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/gofiber/fiber/v3"
)

// SettingsHandlerInterface defines the contract for settings handlers
type SettingsHandlerInterface interface {
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
}

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsFlow businessflow.SettingsFlow
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsFlow businessflow.SettingsFlow) *SettingsHandler {
	return &SettingsHandler{
		settingsFlow: settingsFlow,
	}
}

// List returns every settings key/value pair. Public.
func (h *SettingsHandler) List(c fiber.Ctx) error {
	result, err := h.settingsFlow.List(createRequestContext(c, "/api/settings"))
	if err != nil {
		log.Printf("Settings listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Update upserts the disclosure texts and optional keys. Admin only.
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	err := h.settingsFlow.Update(createRequestContext(c, "/api/settings"), &req, currentUser(c))
	if err != nil {
		if businessflow.IsDisclosureTextsRequired(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
				Message: "Both kvkk_text and aydinlatma_text are required.",
			})
		}
		log.Printf("Settings update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Settings updated successfully."})
}
