package middleware

import (
	"course-converter/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys of validated request values.
const (
	PageIDKey       = "validated_page_id"
	TemplatePathKey = "validated_template_path"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateScenePredictParams validates the pageId path parameter and the
// templatePath query parameter of a scene prediction.
func (vm *ValidationMiddleware) ValidateScenePredictParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pageID := c.Params("pageId")
		templatePath := c.Query("templatePath")

		if errors := vm.validator.ValidateScenePredictParams(pageID, templatePath); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated values in context for handlers to use
		c.Locals(PageIDKey, pageID)
		c.Locals(TemplatePathKey, templatePath)
		return c.Next()
	}
}
