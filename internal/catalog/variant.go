package catalog

import "fmt"

// Background styles.
const (
	BackgroundSolid = "solid"
	BackgroundImage = "image"
	BackgroundVideo = "video"
)

// Mandatory page completion rules.
const (
	WaitForSound    = "waitForSound"
	WaitForVideo    = "waitForVideo"
	WaitForOneClick = "waitForOneClick"
)

type Background struct {
	Style string `yaml:"style" json:"style"`
	Value string `yaml:"value" json:"value"`
}

type Logo struct {
	Present  bool    `yaml:"present" json:"present"`
	Position *string `yaml:"position" json:"position"`
	Size     string  `yaml:"size" json:"size"`
}

type Typography struct {
	Contrast string `yaml:"contrast" json:"contrast"`
	Notes    string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type Media struct {
	Video bool `yaml:"video" json:"video"`
	Image bool `yaml:"image" json:"image"`
}

type Mandatory struct {
	IsMandatory bool   `yaml:"isMandatory" json:"isMandatory"`
	Type        string `yaml:"type" json:"type"`
}

type Animations struct {
	Level   string   `yaml:"level" json:"level"`
	Presets []string `yaml:"presets" json:"presets"`
}

type Layout struct {
	Emphasis          string `yaml:"emphasis" json:"emphasis"`
	HeadlinePlacement string `yaml:"headlinePlacement" json:"headlinePlacement"`
}

// VariantFeature describes the look of a brand variant.
type VariantFeature struct {
	BrandName    string     `yaml:"brandName" json:"brandName"`
	ColorPalette []string   `yaml:"colorPalette" json:"colorPalette"`
	Background   Background `yaml:"background" json:"background"`
	Logo         Logo       `yaml:"logo" json:"logo"`
	Typography   Typography `yaml:"typography" json:"typography"`
	Media        Media      `yaml:"media" json:"media"`
	Mandatory    Mandatory  `yaml:"mandatory" json:"mandatory"`
	Animations   Animations `yaml:"animations" json:"animations"`
	Layout       Layout     `yaml:"layout" json:"layout"`
	UseCases     []string   `yaml:"useCases" json:"useCases"`
}

func (v VariantFeature) validate() error {
	switch v.Background.Style {
	case BackgroundSolid, BackgroundImage, BackgroundVideo:
	default:
		return fmt.Errorf("unknown background style %q", v.Background.Style)
	}
	switch v.Mandatory.Type {
	case WaitForSound, WaitForVideo, WaitForOneClick:
	default:
		return fmt.Errorf("unknown mandatory type %q", v.Mandatory.Type)
	}
	return nil
}
