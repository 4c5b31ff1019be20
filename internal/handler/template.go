package handler

import (
	"course-converter/internal/dto"
	"course-converter/internal/logger"
	"course-converter/internal/service"
	"course-converter/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TemplateHandler serves raw templates and template listings
type TemplateHandler struct {
	templates service.TemplateRequestService
	validator *validation.Validator
}

func NewTemplateHandler(templates service.TemplateRequestService) *TemplateHandler {
	return &TemplateHandler{templates: templates, validator: validation.NewValidator()}
}

// RequestTemplate godoc
// @Summary Get a raw template
// @Description Returns the template of a size and brand without substituting anything
// @Tags templates
// @Accept json
// @Produce json
// @Param request body dto.TemplateRequest true "Size and brand"
// @Success 200 {object} dto.Response{data=domain.RawTemplate}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /convert/template/request [post]
func (h *TemplateHandler) RequestTemplate(c *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateTemplateRequest(req.Size, req.Brand); len(errs) > 0 {
		return errs
	}

	logger.Get().Info("Template request", zap.String("size", req.Size), zap.String("brand", req.Brand))
	tmpl, err := h.templates.Get(c.UserContext(), req.Size, req.Brand)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(tmpl))
}

// ListTemplates godoc
// @Summary List catalog templates
// @Description Lists every size and brand pair with whether its file exists
// @Tags templates
// @Produce json
// @Success 200 {object} dto.Response{data=[]domain.TemplateListing}
// @Failure 500 {object} middleware.ErrorResponse
// @Router /convert/template/list [get]
func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	listings, err := h.templates.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(listings))
}

// ListTemplateFiles godoc
// @Summary List template files
// @Description Lists the scene template and XL raw template files on disk
// @Tags templates
// @Produce json
// @Success 200 {object} dto.Response{data=[]domain.TemplateFileGroup}
// @Failure 500 {object} middleware.ErrorResponse
// @Router /convert/templates [get]
func (h *TemplateHandler) ListTemplateFiles(c *fiber.Ctx) error {
	groups, err := h.templates.ListTemplateFiles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(groups))
}
