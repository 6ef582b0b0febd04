package handlers

import (
	"log"
	"strconv"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// UserHandlerInterface defines the contract for user management handlers
type UserHandlerInterface interface {
	List(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// Messages for account validation, matching the management UI wording.
var userFieldMessages = map[string]string{
	"username": "Username is required.",
	"password": "Password must be at least 6 characters long.",
	"role":     "Invalid role.",
}

// UserHandler handles admin-only account management HTTP requests
type UserHandler struct {
	userFlow  businessflow.UserManagementFlow
	validator *validator.Validate
}

// NewUserHandler creates a new user management handler
func NewUserHandler(userFlow businessflow.UserManagementFlow) *UserHandler {
	return &UserHandler{
		userFlow:  userFlow,
		validator: newValidator(),
	}
}

// List returns a filtered, paginated account list. Unparsable or non-positive
// page/limit values are clamped rather than rejected.
func (h *UserHandler) List(c fiber.Ctx) error {
	query := dto.ListUsersQuery{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	query.Page, _ = strconv.Atoi(c.Query("page"))
	query.Limit, _ = strconv.Atoi(c.Query("limit"))

	result, err := h.userFlow.List(createRequestContext(c, "/api/users"), &query)
	if err != nil {
		log.Printf("User listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Create adds a new staff or admin account.
func (h *UserHandler) Create(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: fieldErrors(err, userFieldMessages),
		})
	}

	result, err := h.userFlow.Create(createRequestContext(c, "/api/users"), &req, currentUser(c))
	if err != nil {
		if businessflow.IsUsernameAlreadyExists(err) {
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: "Username already exists."})
		}
		log.Printf("User creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Update applies a partial account update.
func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "User not found."})
	}

	var req dto.UpdateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: fieldErrors(err, userFieldMessages),
		})
	}

	err = h.userFlow.Update(createRequestContext(c, "/api/users/:id"), id, &req, currentUser(c))
	if err != nil {
		if businessflow.IsNoFieldsToUpdate(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "No fields to update."})
		}
		if businessflow.IsSelfDemoteForbidden(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
				Message: "Admin users cannot change their own role to non-admin.",
			})
		}
		if businessflow.IsUserNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "User not found."})
		}
		if businessflow.IsUsernameAlreadyExists(err) {
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: "Username already exists."})
		}
		log.Printf("User update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "User updated successfully."})
}

// Delete removes an account. The authenticated admin cannot delete itself.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "User not found."})
	}

	err = h.userFlow.Delete(createRequestContext(c, "/api/users/:id"), id, currentUser(c))
	if err != nil {
		if businessflow.IsSelfDeleteForbidden(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
				Message: "Admin users cannot delete themselves.",
			})
		}
		if businessflow.IsUserNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "User not found."})
		}
		log.Printf("User deletion failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "User deleted successfully."})
}
