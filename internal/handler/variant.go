package handler

import (
	"course-converter/internal/domain"
	"course-converter/internal/dto"
	"course-converter/internal/jsontree"
	"course-converter/internal/service"
	"course-converter/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// VariantHandler generates brand variant scenes
type VariantHandler struct {
	variants  service.VariantService
	validator *validation.Validator
}

func NewVariantHandler(variants service.VariantService) *VariantHandler {
	return &VariantHandler{variants: variants, validator: validation.NewValidator()}
}

// Generate godoc
// @Summary Generate a variant scene
// @Description Reduces a base template to a minimal scene and restyles it for a brand variant
// @Tags variants
// @Accept json
// @Produce json
// @Param request body dto.VariantGenerateRequest true "Base template and variant"
// @Success 200 {object} dto.Response{data=domain.VariantResult}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /convert/variant/generate [post]
func (h *VariantHandler) Generate(c *fiber.Ctx) error {
	var req dto.VariantGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateVariantRequest(&req); len(errs) > 0 {
		return errs
	}

	vr := service.VariantRequest{
		Size:    req.Base.Size,
		Brand:   req.Base.Brand,
		Variant: req.Variant,
	}
	if dto.Present(req.Base.Template) {
		tmpl, err := jsontree.Parse(req.Base.Template)
		if err != nil {
			return domain.NewError(domain.CodeInvalidInput, "base.template is not valid JSON", err)
		}
		vr.Template = tmpl
	}

	result, err := h.variants.Generate(c.UserContext(), vr)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(result))
}

// List godoc
// @Summary List variants
// @Description Lists the names of the brand variants
// @Tags variants
// @Produce json
// @Success 200 {object} dto.Response{data=dto.VariantListResponse}
// @Router /convert/variant/list [get]
func (h *VariantHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.OK(dto.VariantListResponse{Variants: h.variants.Variants()}))
}
