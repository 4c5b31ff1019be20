package domain

import "time"

// Stage is a step of the conversion state machine.
type Stage string

const (
	StageLoaded      Stage = "loaded"
	StageTagsBuilt   Stage = "tags_built"
	StageSubstituted Stage = "substituted"
	StageParsed      Stage = "parsed"
	StageRepaired    Stage = "repaired"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// ConversionStats summarizes one conversion.
type ConversionStats struct {
	Sections           int `json:"sections"`
	Quizzes            int `json:"quizzes"`
	TotalTags          int `json:"totalTags"`
	ReplacedTags       int `json:"replacedTags"`
	UnresolvedTags     int `json:"unresolvedTags"`
	RepairedFields     int `json:"repairedFields"`
	HeuristicFallbacks int `json:"heuristicFallbacks,omitempty"`
}

// ConversionResult is the converted template with its statistics.
// Template holds an order preserving JSON tree.
type ConversionResult struct {
	Template any             `json:"convertedTemplate"`
	Stats    ConversionStats `json:"stats"`
	Stage    Stage           `json:"-"`
	Tags     TagMapping      `json:"-"`
}

// FileConversionResult describes a conversion persisted to disk.
type FileConversionResult struct {
	OutputPath string          `json:"outputPath"`
	FileName   string          `json:"fileName"`
	FileSize   string          `json:"fileSize"`
	Stats      ConversionStats `json:"stats"`
}

// Type0Content is the data interpolated into an intro scene.
type Type0Content struct {
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Mandatory bool   `json:"mandatory"`
}

// DynamicTemplateInfo describes the reference template used by a dynamic conversion.
type DynamicTemplateInfo struct {
	Size           string `json:"size"`
	Variant        string `json:"variant"`
	FileName       string `json:"fileName"`
	BoxesCount     int    `json:"boxesCount"`
	SectionsMapped int    `json:"sectionsMapped"`
	QuizzesMapped  int    `json:"quizzesMapped"`
}

type DynamicTemplateStats struct {
	Sections            int    `json:"sections"`
	Quizzes             int    `json:"quizzes"`
	TotalTags           int    `json:"totalTags"`
	ReplacedTags        int    `json:"replacedTags"`
	TemplateSize        string `json:"templateSize"`
	DynamicBoxesCreated int    `json:"dynamicBoxesCreated"`
	HeuristicFallbacks  int    `json:"heuristicFallbacks"`
}

type DynamicTemplateResult struct {
	Template     any                  `json:"convertedTemplate"`
	TemplateInfo DynamicTemplateInfo  `json:"templateInfo"`
	Stats        DynamicTemplateStats `json:"stats"`
}

// TemplateMetadata describes a raw template file.
type TemplateMetadata struct {
	Size         string `json:"size"`
	Brand        string `json:"brand"`
	FileName     string `json:"fileName"`
	FileSize     string `json:"fileSize"`
	BoxesCount   int    `json:"boxesCount"`
	LastModified string `json:"lastModified"`
}

// RawTemplate is a template file returned unsubstituted.
type RawTemplate struct {
	Template string           `json:"template"`
	Metadata TemplateMetadata `json:"metadata"`
}

// TemplateListing is one size and brand pair with its file status.
type TemplateListing struct {
	Size         string `json:"size"`
	Brand        string `json:"brand"`
	FileName     string `json:"fileName"`
	Exists       bool   `json:"exists"`
	TemplateType string `json:"templateType"`
	FullPath     string `json:"fullPath"`
}

type TemplateFile struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	TemplateType string `json:"templateType"`
}

// TemplateFileGroup lists the template files of one template type directory.
type TemplateFileGroup struct {
	TemplateType string         `json:"templateType"`
	Files        []TemplateFile `json:"files"`
}

// OutputFile is a persisted conversion result.
type OutputFile struct {
	FileName    string    `json:"filename"`
	Size        int64     `json:"size"`
	Created     time.Time `json:"created"`
	DownloadURL string    `json:"downloadUrl"`
}

type Type0Metadata struct {
	Brand       string       `json:"brand"`
	SceneIndex  int          `json:"sceneIndex"`
	GeneratedAt string       `json:"generatedAt"`
	ContentUsed Type0Content `json:"contentUsed"`
}

// Type0Result is a generated intro scene.
type Type0Result struct {
	Template any           `json:"template"`
	Metadata Type0Metadata `json:"metadata"`
}

// VariantBase echoes which base template a variant was generated from.
type VariantBase struct {
	Provided bool   `json:"provided,omitempty"`
	Size     string `json:"size,omitempty"`
	Brand    string `json:"brand,omitempty"`
}

// VariantResult is a minimal scene restyled for a brand variant.
type VariantResult struct {
	Base     VariantBase `json:"base"`
	Variant  string      `json:"variant"`
	Template any         `json:"template"`
}
