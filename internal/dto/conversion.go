package dto

import (
	"bytes"
	"encoding/json"

	"course-converter/internal/domain"
)

// ConvertRequest converts inline AI output with an inline template, or with
// the built-in XL skeleton when templateType starts with "XL" and template is
// omitted.
// @Description Request body for an inline conversion
type ConvertRequest struct {
	AIOutput     json.RawMessage `json:"aiOutput" swaggertype:"object"`
	Template     json.RawMessage `json:"template,omitempty" swaggertype:"object"`
	TemplateType string          `json:"templateType" example:"Capsule-Default"`
}

// ConvertResponse is the data of an inline conversion.
type ConvertResponse struct {
	ConvertedTemplate interface{}            `json:"convertedTemplate"`
	Stats             domain.ConversionStats `json:"stats"`
	TemplateType      string                 `json:"templateType"`
}

// ConvertURLRequest converts files that are already on the server.
// @Description Request body for a file conversion
type ConvertURLRequest struct {
	AIOutputPath string `json:"aiOutputPath" example:"inputs/ai-output.json"`
	TemplatePath string `json:"templatePath" example:"templates/LSCapsule/voiceidealStudioTemplate_blue.json"`
}

// FileConversionResponse is the data of a persisted conversion.
type FileConversionResponse struct {
	OutputPath  string                 `json:"outputPath"`
	DownloadURL string                 `json:"downloadUrl"`
	Stats       domain.ConversionStats `json:"stats"`
	FileSize    string                 `json:"fileSize"`
}

// DynamicConvertRequest injects AI output into the reference template of a
// size and brand.
type DynamicConvertRequest struct {
	AIOutput     json.RawMessage `json:"aiOutput" swaggertype:"object"`
	TemplateType string          `json:"templateType" example:"Capsule-Blue"`
}

// TemplateRequest selects a raw template.
type TemplateRequest struct {
	Size  string `json:"size" example:"Capsule"`
	Brand string `json:"brand" example:"blue"`
}

// Present reports whether a raw JSON member was sent with a non-null value.
func Present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// TemplateText returns the template as text. A template sent as a JSON string
// is unquoted, anything else is used as is.
func TemplateText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", domain.NewError(domain.CodeInvalidInput, "template is not a valid JSON string", err)
		}
		return s, nil
	}
	return string(trimmed), nil
}
