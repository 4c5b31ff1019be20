package domain

// BoxType classifies a box by the plugin that renders it.
type BoxType string

const (
	BoxText  BoxType = "text"
	BoxImage BoxType = "image"
	BoxAudio BoxType = "audio"
	BoxVideo BoxType = "video"
	BoxOther BoxType = "other"
)

type BoxPosition struct {
	X    string `json:"x"`
	Y    string `json:"y"`
	Type string `json:"type"`
}

type BoxInfo struct {
	BoxID    string       `json:"boxId"`
	Parent   string       `json:"parent"`
	PluginID string       `json:"pluginId"`
	Type     BoxType      `json:"type"`
	Position *BoxPosition `json:"position,omitempty"`
}

// SceneStats counts the boxes of one page and carries its estimated scene type.
type SceneStats struct {
	PageID             string    `json:"pageId"`
	TextCount          int       `json:"textCount"`
	ImageCount         int       `json:"imageCount"`
	AudioCount         int       `json:"audioCount"`
	VideoCount         int       `json:"videoCount"`
	OtherCount         int       `json:"otherCount"`
	TotalBoxes         int       `json:"totalBoxes"`
	Boxes              []BoxInfo `json:"boxes"`
	EstimatedSceneType string    `json:"estimatedSceneType,omitempty"`
}

type SceneSummary struct {
	TotalScenes int            `json:"totalScenes"`
	TotalBoxes  int            `json:"totalBoxes"`
	SceneTypes  map[string]int `json:"sceneTypes"`
}

type SceneAnalysis struct {
	Scenes  []SceneStats `json:"scenes"`
	Summary SceneSummary `json:"summary"`
}
