package validation

import (
	"encoding/json"
	"testing"

	"course-converter/internal/domain"
	"course-converter/internal/dto"

	"github.com/stretchr/testify/assert"
)

func fields(errs domain.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateConvertRequest(t *testing.T) {
	v := NewValidator()
	ai := json.RawMessage(`{"CourseInfo":{}}`)

	tests := []struct {
		name string
		req  dto.ConvertRequest
		want []string
	}{
		{name: "valid with template", req: dto.ConvertRequest{AIOutput: ai, Template: json.RawMessage(`{}`), TemplateType: "Capsule-Blue"}, want: []string{}},
		{name: "XL without template", req: dto.ConvertRequest{AIOutput: ai, TemplateType: "XL-SOMPO"}, want: []string{}},
		{name: "null ai output", req: dto.ConvertRequest{AIOutput: json.RawMessage(`null`), Template: json.RawMessage(`"{}"`)}, want: []string{"aiOutput"}},
		{name: "missing template", req: dto.ConvertRequest{AIOutput: ai, TemplateType: "Capsule-Blue"}, want: []string{"template"}},
		{name: "bad template type", req: dto.ConvertRequest{AIOutput: ai, Template: json.RawMessage(`{}`), TemplateType: "Capsule Blue"}, want: []string{"templateType"}},
		{name: "nothing", req: dto.ConvertRequest{}, want: []string{"aiOutput", "template"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(v.ValidateConvertRequest(&tt.req)))
		})
	}
}

func TestValidateConvertURLRequest(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateConvertURLRequest(&dto.ConvertURLRequest{AIOutputPath: "a.json", TemplatePath: "t.json"}))
	assert.Equal(t, []string{"aiOutputPath", "templatePath"}, fields(v.ValidateConvertURLRequest(&dto.ConvertURLRequest{TemplatePath: " "})))
}

func TestValidateDynamicRequest(t *testing.T) {
	v := NewValidator()
	errs := v.ValidateDynamicRequest(&dto.DynamicConvertRequest{})
	assert.Equal(t, []string{"aiOutput", "templateType"}, fields(errs))
	assert.Equal(t, domain.CodeMissingField, errs[1].Code)

	errs = v.ValidateDynamicRequest(&dto.DynamicConvertRequest{AIOutput: json.RawMessage(`{}`), TemplateType: "a-b-c"})
	assert.Equal(t, []string{"templateType"}, fields(errs))
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
}

func TestValidateTemplateRequest(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateTemplateRequest("Capsule", "blue"))

	errs := v.ValidateTemplateRequest("", "blue/../x")
	assert.Equal(t, []string{"size", "brand"}, fields(errs))
	assert.Equal(t, domain.CodeInvalidFormat, errs[1].Code)
}

func TestValidateVariantRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  dto.VariantGenerateRequest
		want []string
	}{
		{name: "inline base", req: dto.VariantGenerateRequest{Base: &dto.VariantBaseRequest{Template: json.RawMessage(`{}`)}, Variant: "blue"}, want: []string{}},
		{name: "size and brand", req: dto.VariantGenerateRequest{Base: &dto.VariantBaseRequest{Size: "Capsule", Brand: "blue"}, Variant: "blue"}, want: []string{}},
		{name: "size only", req: dto.VariantGenerateRequest{Base: &dto.VariantBaseRequest{Size: "Capsule"}, Variant: "blue"}, want: []string{"base"}},
		{name: "no base or variant", req: dto.VariantGenerateRequest{}, want: []string{"base", "variant"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(v.ValidateVariantRequest(&tt.req)))
		})
	}
}

func TestValidateSceneRequests(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateSceneAnalyzeRequest(&dto.SceneAnalyzeRequest{TemplatePath: "scene.json"}))
	assert.Len(t, v.ValidateSceneAnalyzeRequest(&dto.SceneAnalyzeRequest{Template: json.RawMessage(`null`)}), 1)

	assert.Empty(t, v.ValidateScenePredictParams("pa-1", "scene.json"))
	assert.Equal(t, []string{"templatePath"}, fields(v.ValidateScenePredictParams("pa-1", "")))
}

func TestValidateType0Request(t *testing.T) {
	v := NewValidator()
	yes := true

	assert.Empty(t, v.ValidateType0Request("blue", &dto.Type0ContentRequest{Title: "Intro", Mandatory: &yes}))
	assert.Equal(t, []string{"brand", "content"}, fields(v.ValidateType0Request("", nil)))
	assert.Equal(t, []string{"content.title", "content.mandatory"}, fields(v.ValidateType0Request("blue", &dto.Type0ContentRequest{})))

	errs := v.ValidateType0FromTemplateRequest(&dto.Type0FromTemplateRequest{TemplateType: "Capsule-Blue", Content: &dto.Type0ContentRequest{Title: "Intro"}})
	assert.Equal(t, []string{"content.mandatory"}, fields(errs))
}
