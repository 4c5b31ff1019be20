package handler

import (
	"course-converter/internal/domain"
	"course-converter/internal/dto"
	"course-converter/internal/jsontree"
	"course-converter/internal/middleware"
	"course-converter/internal/service"
	"course-converter/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SceneHandler estimates scene types of templates
type SceneHandler struct {
	scenes    service.SceneService
	validator *validation.Validator
}

func NewSceneHandler(scenes service.SceneService) *SceneHandler {
	return &SceneHandler{scenes: scenes, validator: validation.NewValidator()}
}

// Analyze godoc
// @Summary Analyze the scenes of a template
// @Description Groups the boxes of a template by page and estimates each page's scene type
// @Tags scenes
// @Accept json
// @Produce json
// @Param request body dto.SceneAnalyzeRequest true "Template or template path"
// @Success 200 {object} dto.Response{data=domain.SceneAnalysis}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /convert/scene/analyze [post]
func (h *SceneHandler) Analyze(c *fiber.Ctx) error {
	var req dto.SceneAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateSceneAnalyzeRequest(&req); len(errs) > 0 {
		return errs
	}

	var tmpl any
	if dto.Present(req.Template) {
		node, err := jsontree.Parse(req.Template)
		if err != nil {
			return domain.NewError(domain.CodeInvalidInput, "template is not valid JSON", err)
		}
		tmpl = node
	}

	analysis, err := h.scenes.Analyze(c.UserContext(), tmpl, req.TemplatePath)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(analysis))
}

// Predict godoc
// @Summary Predict the scene type of a page
// @Description Estimates the scene type of one page of a template file
// @Tags scenes
// @Produce json
// @Param pageId path string true "Page id"
// @Param templatePath query string true "Template file path"
// @Success 200 {object} dto.Response{data=dto.ScenePredictResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /convert/scene/predict/{pageId} [get]
func (h *SceneHandler) Predict(c *fiber.Ctx) error {
	pageID, _ := c.Locals(middleware.PageIDKey).(string)
	templatePath, _ := c.Locals(middleware.TemplatePathKey).(string)

	scene, err := h.scenes.Predict(c.UserContext(), templatePath, pageID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.ScenePredictResponse{PageID: pageID, Scene: scene}))
}
