// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/app/middleware"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// newValidator builds a validator whose field errors report the json wire name
// instead of the Go struct field name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// getValidationErrorMessage returns a human-readable message for a field error
func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// fieldErrors converts a validator error into the field-complete error list the
// API returns. Per-field message overrides take precedence over the generic
// tag-derived text.
func fieldErrors(err error, overrides map[string]string) []dto.FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	result := make([]dto.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		message := getValidationErrorMessage(fe)
		if override, ok := overrides[fe.Field()]; ok {
			message = override
		}
		result = append(result, dto.FieldError{Field: fe.Field(), Message: message})
	}
	return result
}

// currentUser reads the identity the auth middleware attached to the request.
func currentUser(c fiber.Ctx) businessflow.AuthenticatedUser {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	username, _ := c.Locals(middleware.UsernameKey).(string)
	role, _ := c.Locals(middleware.RoleKey).(string)
	return businessflow.AuthenticatedUser{
		ID:       id,
		Username: username,
		Role:     role,
	}
}

// createRequestContext creates a context with timeout and request-scoped values
func createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, "request_id", c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}

// clientMetadata collects client information for logging
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get(businessflow.RequestIDKey); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}
