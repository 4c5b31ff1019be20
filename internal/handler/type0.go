package handler

import (
	"course-converter/internal/domain"
	"course-converter/internal/dto"
	"course-converter/internal/logger"
	"course-converter/internal/service"
	"course-converter/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Type0Handler generates intro scenes
type Type0Handler struct {
	type0     service.Type0Service
	validator *validation.Validator
}

func NewType0Handler(type0 service.Type0Service) *Type0Handler {
	return &Type0Handler{type0: type0, validator: validation.NewValidator()}
}

func type0Content(req *dto.Type0ContentRequest) domain.Type0Content {
	return domain.Type0Content{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Mandatory: *req.Mandatory,
	}
}

// Brands godoc
// @Summary List intro scene brands
// @Tags type0
// @Produce json
// @Success 200 {object} dto.Response{data=dto.Type0BrandsResponse}
// @Router /convert/type0/brands [get]
func (h *Type0Handler) Brands(c *fiber.Ctx) error {
	return c.JSON(dto.OK(dto.Type0BrandsResponse{Brands: h.type0.Brands()}))
}

// Generate godoc
// @Summary Generate an intro scene
// @Description Generates the intro scene of a brand with a title, an optional image and a mandatory flag
// @Tags type0
// @Accept json
// @Produce json
// @Param request body dto.Type0GenerateRequest true "Brand and content"
// @Success 200 {object} dto.Response{data=domain.Type0Result}
// @Failure 400 {object} middleware.ErrorResponse
// @Router /convert/type0/generate [post]
func (h *Type0Handler) Generate(c *fiber.Ctx) error {
	var req dto.Type0GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateType0Request(req.Brand, req.Content); len(errs) > 0 {
		return errs
	}

	logger.Get().Info("Generating intro scene", zap.String("brand", req.Brand))
	result, err := h.type0.Generate(c.UserContext(), req.Brand, type0Content(req.Content))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKWithMessage("Type0 template generated successfully", result))
}

// GenerateFromTemplate godoc
// @Summary Generate an intro scene for a template type
// @Description Generates the intro scene of the brand named by the last part of a template type
// @Tags type0
// @Accept json
// @Produce json
// @Param request body dto.Type0FromTemplateRequest true "Template type and content"
// @Success 200 {object} dto.Response{data=domain.Type0Result}
// @Failure 400 {object} middleware.ErrorResponse
// @Router /convert/type0/generate-from-template [post]
func (h *Type0Handler) GenerateFromTemplate(c *fiber.Ctx) error {
	var req dto.Type0FromTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateType0FromTemplateRequest(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.type0.GenerateFromTemplateType(c.UserContext(), req.TemplateType, type0Content(req.Content))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKWithMessage("Type0 template generated successfully", result))
}
