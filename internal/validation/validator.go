package validation

import (
	"regexp"
	"strings"

	"course-converter/internal/domain"
	"course-converter/internal/dto"
)

var (
	// templateTypePattern accepts a size with an optional brand, e.g. "XL" or "Capsule-Blue".
	templateTypePattern = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)?$`)
	// namePattern accepts sizes, brands and variants.
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConvertRequest requires the AI output, and a template unless the
// template type selects the XL skeleton path.
func (v *Validator) ValidateConvertRequest(req *dto.ConvertRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if !dto.Present(req.AIOutput) {
		errors = append(errors, domain.NewMissingFieldError("aiOutput"))
	}

	if req.TemplateType != "" && !templateTypePattern.MatchString(req.TemplateType) {
		errors = append(errors, domain.NewInvalidFormatError("templateType", req.TemplateType))
	}

	if !dto.Present(req.Template) && !strings.HasPrefix(req.TemplateType, "XL") {
		errors = append(errors, domain.NewMissingFieldError("template"))
	}

	return errors
}

func (v *Validator) ValidateConvertURLRequest(req *dto.ConvertURLRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.AIOutputPath) == "" {
		errors = append(errors, domain.NewMissingFieldError("aiOutputPath"))
	}
	if strings.TrimSpace(req.TemplatePath) == "" {
		errors = append(errors, domain.NewMissingFieldError("templatePath"))
	}

	return errors
}

func (v *Validator) ValidateDynamicRequest(req *dto.DynamicConvertRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if !dto.Present(req.AIOutput) {
		errors = append(errors, domain.NewMissingFieldError("aiOutput"))
	}
	errors = append(errors, v.validateTemplateType(req.TemplateType)...)

	return errors
}

// ValidateTemplateRequest checks the size and brand of a raw template
// request. Whether the pair exists is decided by the catalog.
func (v *Validator) ValidateTemplateRequest(size, brand string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, validateName("size", size)...)
	errors = append(errors, validateName("brand", brand)...)

	return errors
}

func (v *Validator) ValidateVariantRequest(req *dto.VariantGenerateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Base == nil {
		errors = append(errors, domain.NewMissingFieldError("base"))
	} else if !dto.Present(req.Base.Template) {
		if strings.TrimSpace(req.Base.Size) == "" || strings.TrimSpace(req.Base.Brand) == "" {
			errors = append(errors, domain.FieldError{
				Code:    domain.CodeMissingField,
				Field:   "base",
				Message: "Either base.template or base.size+brand must be provided",
			})
		}
	}

	errors = append(errors, validateName("variant", req.Variant)...)

	return errors
}

func (v *Validator) ValidateSceneAnalyzeRequest(req *dto.SceneAnalyzeRequest) domain.ValidationErrors {
	if !dto.Present(req.Template) && strings.TrimSpace(req.TemplatePath) == "" {
		return domain.ValidationErrors{{
			Code:    domain.CodeMissingField,
			Field:   "template",
			Message: "Either template or templatePath must be provided",
		}}
	}
	return nil
}

// ValidateScenePredictParams checks the page id and template path of a
// scene prediction.
func (v *Validator) ValidateScenePredictParams(pageID, templatePath string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(pageID) == "" {
		errors = append(errors, domain.NewMissingFieldError("pageId"))
	}
	if strings.TrimSpace(templatePath) == "" {
		errors = append(errors, domain.NewMissingFieldError("templatePath"))
	}

	return errors
}

// ValidateType0Request checks the brand and the content of an intro scene.
// The title and the mandatory flag are required.
func (v *Validator) ValidateType0Request(brand string, content *dto.Type0ContentRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(brand) == "" {
		errors = append(errors, domain.NewMissingFieldError("brand"))
	}
	errors = append(errors, validateType0Content(content)...)

	return errors
}

func (v *Validator) ValidateType0FromTemplateRequest(req *dto.Type0FromTemplateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.validateTemplateType(req.TemplateType)...)
	errors = append(errors, validateType0Content(req.Content)...)

	return errors
}

func (v *Validator) validateTemplateType(templateType string) domain.ValidationErrors {
	if strings.TrimSpace(templateType) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("templateType")}
	}
	if !templateTypePattern.MatchString(templateType) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("templateType", templateType)}
	}
	return nil
}

// Helper functions for validation

func validateName(field, value string) domain.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !namePattern.MatchString(value) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, value)}
	}
	return nil
}

func validateType0Content(content *dto.Type0ContentRequest) domain.ValidationErrors {
	if content == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("content")}
	}

	var errors domain.ValidationErrors
	if strings.TrimSpace(content.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("content.title"))
	}
	if content.Mandatory == nil {
		errors = append(errors, domain.NewMissingFieldError("content.mandatory"))
	}
	return errors
}
