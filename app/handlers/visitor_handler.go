package handlers

import (
	"log"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// VisitorHandlerInterface defines the contract for visitor handlers
type VisitorHandlerInterface interface {
	Validate(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	ListActive(c fiber.Ctx) error
	ListPast(c fiber.Ctx) error
	Checkout(c fiber.Ctx) error
	Metrics(c fiber.Ctx) error
}

// Kiosk-facing validation messages, one per intake field.
var visitorFieldMessages = map[string]string{
	"tc_kimlik":        "TC Kimlik 11 haneli olmalıdır.",
	"first_name":       "İsim boş olamaz.",
	"last_name":        "Soyisim boş olamaz.",
	"birth_year":       "Doğum yılı sayı olmalıdır.",
	"reason_for_visit": "Ziyaret sebebi boş olamaz.",
}

// VisitorHandler handles visitor lifecycle HTTP requests
type VisitorHandler struct {
	visitorFlow businessflow.VisitorFlow
	validator   *validator.Validate
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(visitorFlow businessflow.VisitorFlow) *VisitorHandler {
	return &VisitorHandler{
		visitorFlow: visitorFlow,
		validator:   newValidator(),
	}
}

// Validate pre-checks the kiosk form fields without creating anything.
func (h *VisitorHandler) Validate(c fiber.Ctx) error {
	var req dto.ValidateVisitorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: fieldErrors(err, visitorFieldMessages),
		})
	}

	log.Printf("Visitor fields validated: %s %s", req.FirstName, req.LastName)

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Doğrulama başarılı"})
}

// Create registers a new visit from the kiosk intake form.
func (h *VisitorHandler) Create(c fiber.Ctx) error {
	var req dto.CreateVisitorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: fieldErrors(err, visitorFieldMessages),
		})
	}

	result, err := h.visitorFlow.Intake(createRequestContext(c, "/api/visitors"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsActiveVisitExists(err) {
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{
				Message: "Bu TC kimlik numarası ile zaten aktif bir ziyaretçi kaydı bulunmaktadır.",
			})
		}
		log.Printf("Visitor intake failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListActive returns all active visits, newest entry first.
func (h *VisitorHandler) ListActive(c fiber.Ctx) error {
	result, err := h.visitorFlow.ListActive(createRequestContext(c, "/api/visitors/active"))
	if err != nil {
		log.Printf("Active visitor listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ListPast returns all finished visits, newest exit first.
func (h *VisitorHandler) ListPast(c fiber.Ctx) error {
	result, err := h.visitorFlow.ListPast(createRequestContext(c, "/api/visitors/past"))
	if err != nil {
		log.Printf("Past visitor listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Checkout finishes an active visit. Repeating the call on the same id fails.
func (h *VisitorHandler) Checkout(c fiber.Ctx) error {
	id, err := utils.ParseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "Ziyaretçi bulunamadı."})
	}

	result, err := h.visitorFlow.Checkout(createRequestContext(c, "/api/visitors/:id/deactivate"), id, clientMetadata(c))
	if err != nil {
		if businessflow.IsVisitorNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "Ziyaretçi bulunamadı."})
		}
		if businessflow.IsAlreadyCheckedOut(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Ziyaretçi zaten çıkış yapmış."})
		}
		log.Printf("Visitor checkout failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Metrics returns the staff dashboard aggregates.
func (h *VisitorHandler) Metrics(c fiber.Ctx) error {
	result, err := h.visitorFlow.Metrics(createRequestContext(c, "/api/metrics/visitors"))
	if err != nil {
		log.Printf("Visitor metrics failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
