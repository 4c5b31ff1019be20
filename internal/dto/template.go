package dto

import "encoding/json"

// VariantBaseRequest selects the base template of a variant, either inline
// or by size and brand.
type VariantBaseRequest struct {
	Template json.RawMessage `json:"template,omitempty" swaggertype:"object"`
	Size     string          `json:"size,omitempty" example:"Capsule"`
	Brand    string          `json:"brand,omitempty" example:"blue"`
}

// VariantGenerateRequest restyles a base template for a brand variant.
type VariantGenerateRequest struct {
	Base    *VariantBaseRequest `json:"base"`
	Variant string              `json:"variant" example:"sompo"`
}

// SceneAnalyzeRequest analyzes an inline template or a template file.
type SceneAnalyzeRequest struct {
	Template     json.RawMessage `json:"template,omitempty" swaggertype:"object"`
	TemplatePath string          `json:"templatePath,omitempty"`
}

// ScenePredictResponse is the estimated scene of one page.
type ScenePredictResponse struct {
	PageID string      `json:"pageId"`
	Scene  interface{} `json:"scene"`
}

// Type0ContentRequest is the content of an intro scene. Mandatory is a
// pointer so that an omitted flag can be told apart from false.
type Type0ContentRequest struct {
	Title     string `json:"title" example:"Fire Safety"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Mandatory *bool  `json:"mandatory"`
}

// Type0GenerateRequest generates an intro scene for a brand.
type Type0GenerateRequest struct {
	Brand   string               `json:"brand" example:"blue"`
	Content *Type0ContentRequest `json:"content"`
}

// Type0FromTemplateRequest generates an intro scene for the brand of a
// template type.
type Type0FromTemplateRequest struct {
	TemplateType string               `json:"templateType" example:"Capsule-Blue"`
	Content      *Type0ContentRequest `json:"content"`
}

// Type0BrandsResponse lists the intro scene brands.
type Type0BrandsResponse struct {
	Brands []string `json:"brands"`
}

// VariantListResponse lists the variant names.
type VariantListResponse struct {
	Variants []string `json:"variants"`
}
