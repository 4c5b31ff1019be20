package handler

import (
	"path/filepath"

	"course-converter/internal/catalog"
	"course-converter/internal/domain"
	"course-converter/internal/dto"
	"course-converter/internal/logger"
	"course-converter/internal/service"
	"course-converter/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultTemplateType = "Capsule-Default"

// ConversionHandler handles conversion HTTP requests
type ConversionHandler struct {
	conversion service.ConversionService
	dynamic    service.DynamicTemplateService
	outputs    service.OutputStore
	validator  *validation.Validator
}

// NewConversionHandler creates a new ConversionHandler instance
func NewConversionHandler(conversion service.ConversionService, dynamic service.DynamicTemplateService, outputs service.OutputStore) *ConversionHandler {
	return &ConversionHandler{
		conversion: conversion,
		dynamic:    dynamic,
		outputs:    outputs,
		validator:  validation.NewValidator(),
	}
}

func invalidBody(err error) error {
	return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
}

// Convert godoc
// @Summary Convert AI output into a template
// @Description Substitutes the AI output into the given template. An XL template type without a template uses the built-in XL skeleton.
// @Tags conversion
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "AI output and template"
// @Success 200 {object} dto.Response{data=dto.ConvertResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /convert [post]
func (h *ConversionHandler) Convert(c *fiber.Ctx) error {
	var req dto.ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateConvertRequest(&req); len(errs) > 0 {
		return errs
	}

	ai, err := domain.ParseAIOutput(req.AIOutput)
	if err != nil {
		return err
	}
	templateType := req.TemplateType
	if templateType == "" {
		templateType = defaultTemplateType
	}
	logger.Get().Info("Conversion started", zap.String("template_type", templateType))

	var result *domain.ConversionResult
	if catalog.IsXL(templateType) && !dto.Present(req.Template) {
		result, err = h.conversion.ConvertXL(c.UserContext(), ai, templateType)
	} else {
		text, textErr := dto.TemplateText(req.Template)
		if textErr != nil {
			return textErr
		}
		result, err = h.conversion.Convert(c.UserContext(), ai, text)
	}
	if err != nil {
		return err
	}

	return c.JSON(dto.OKWithMessage("Conversion completed successfully", dto.ConvertResponse{
		ConvertedTemplate: result.Template,
		Stats:             result.Stats,
		TemplateType:      templateType,
	}))
}

// ConvertURL godoc
// @Summary Convert files on the server
// @Description Converts an AI output file with a template file and saves the result
// @Tags conversion
// @Accept json
// @Produce json
// @Param request body dto.ConvertURLRequest true "File paths"
// @Success 200 {object} dto.Response{data=dto.FileConversionResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /convert/url [post]
func (h *ConversionHandler) ConvertURL(c *fiber.Ctx) error {
	var req dto.ConvertURLRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateConvertURLRequest(&req); len(errs) > 0 {
		return errs
	}

	logger.Get().Info("Conversion started from files",
		zap.String("ai_output_path", req.AIOutputPath),
		zap.String("template_path", req.TemplatePath),
	)
	result, err := h.conversion.ConvertFile(c.UserContext(), req.AIOutputPath, req.TemplatePath)
	if err != nil {
		return err
	}

	return c.JSON(dto.OKWithMessage("Conversion completed successfully", dto.FileConversionResponse{
		OutputPath:  result.OutputPath,
		DownloadURL: service.OutputDownloadPrefix + filepath.Base(result.OutputPath),
		Stats:       result.Stats,
		FileSize:    result.FileSize,
	}))
}

// ConvertDynamic godoc
// @Summary Inject AI output into a reference template
// @Description Injects the AI output into the reference template of a size and brand
// @Tags conversion
// @Accept json
// @Produce json
// @Param request body dto.DynamicConvertRequest true "AI output and template type"
// @Success 200 {object} dto.Response{data=domain.DynamicTemplateResult}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /convert/dynamic [post]
func (h *ConversionHandler) ConvertDynamic(c *fiber.Ctx) error {
	var req dto.DynamicConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateDynamicRequest(&req); len(errs) > 0 {
		return errs
	}

	ai, err := domain.ParseAIOutput(req.AIOutput)
	if err != nil {
		return err
	}
	result, err := h.dynamic.Create(c.UserContext(), ai, req.TemplateType)
	if err != nil {
		return err
	}

	return c.JSON(dto.OKWithMessage("Dynamic template created successfully", result))
}

// ListOutputs godoc
// @Summary List converted outputs
// @Description Lists the saved conversion results, newest first
// @Tags conversion
// @Produce json
// @Success 200 {object} dto.Response{data=[]domain.OutputFile}
// @Failure 500 {object} middleware.ErrorResponse
// @Router /convert/outputs [get]
func (h *ConversionHandler) ListOutputs(c *fiber.Ctx) error {
	outputs, err := h.outputs.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(outputs))
}
