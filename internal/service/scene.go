package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/logger"

	"go.uber.org/zap"
)

var pluginBoxTypes = map[string]domain.BoxType{
	"BasicText":     domain.BoxText,
	"RichText":      domain.BoxText,
	"ImageBox":      domain.BoxImage,
	"HotspotImages": domain.BoxImage,
	"Image":         domain.BoxImage,
	"AudioBox":      domain.BoxAudio,
	"SoundBox":      domain.BoxAudio,
	"Audio":         domain.BoxAudio,
	"VideoBox":      domain.BoxVideo,
	"Video":         domain.BoxVideo,
}

// ScenePredictor groups the boxes of a template by page and estimates the
// scene type of each page from its box mix.
type ScenePredictor struct{}

// AnalyzeBoxes returns the pages in order of first appearance. Boxes whose
// parent is not a page are ignored.
func (ScenePredictor) AnalyzeBoxes(template *jsontree.Object) []*domain.SceneStats {
	boxes, ok := template.Path("present", "boxesById")
	if !ok {
		logger.Get().Warn("No boxesById found in template")
		return nil
	}
	present, _ := template.Object("present")
	pluginToolbars, _ := present.Object("pluginToolbarsById")
	viewToolbars, _ := present.Object("viewToolbarsById")

	var order []*domain.SceneStats
	byPage := make(map[string]*domain.SceneStats)

	for _, id := range boxes.Keys() {
		box, ok := boxes.Object(id)
		if !ok {
			continue
		}
		nested, _ := box.Object("box")
		parent := firstString(box, nested, "parent")
		if !strings.HasPrefix(parent, pageIDPrefix) {
			continue
		}

		info := domain.BoxInfo{
			BoxID:    id,
			Parent:   parent,
			PluginID: pluginID(id, box, pluginToolbars, viewToolbars),
			Position: boxPosition(box, nested),
		}
		info.Type = classifyPlugin(info.PluginID)

		scene, ok := byPage[parent]
		if !ok {
			scene = &domain.SceneStats{PageID: parent, Boxes: []domain.BoxInfo{}}
			byPage[parent] = scene
			order = append(order, scene)
		}
		scene.Boxes = append(scene.Boxes, info)
		scene.TotalBoxes++
		switch info.Type {
		case domain.BoxText:
			scene.TextCount++
		case domain.BoxImage:
			scene.ImageCount++
		case domain.BoxAudio:
			scene.AudioCount++
		case domain.BoxVideo:
			scene.VideoCount++
		default:
			scene.OtherCount++
		}
	}

	for _, scene := range order {
		scene.EstimatedSceneType = PredictSceneType(scene)
	}
	return order
}

// Analyze returns every scene with a summary of scene type counts.
func (p ScenePredictor) Analyze(template *jsontree.Object) *domain.SceneAnalysis {
	scenes := p.AnalyzeBoxes(template)
	out := &domain.SceneAnalysis{
		Scenes:  make([]domain.SceneStats, 0, len(scenes)),
		Summary: domain.SceneSummary{SceneTypes: map[string]int{}},
	}
	for _, s := range scenes {
		out.Scenes = append(out.Scenes, *s)
		out.Summary.TotalBoxes += s.TotalBoxes
		t := s.EstimatedSceneType
		if t == "" {
			t = "Unknown"
		}
		out.Summary.SceneTypes[t]++
	}
	out.Summary.TotalScenes = len(scenes)
	return out
}

func classifyPlugin(pluginID string) domain.BoxType {
	if t, ok := pluginBoxTypes[pluginID]; ok {
		return t
	}
	return domain.BoxOther
}

// pluginID prefers a separate toolbar entry over the box's own toolbar and
// reads the box's pluginId only when there is no toolbar at all.
func pluginID(id string, box *jsontree.Object, toolbars ...*jsontree.Object) string {
	for _, src := range toolbars {
		if src == nil {
			continue
		}
		if tb, ok := src.Object(id); ok {
			s, _ := tb.String("pluginId")
			return s
		}
	}
	if tb, ok := box.Object("toolbar"); ok {
		s, _ := tb.String("pluginId")
		return s
	}
	s, _ := box.String("pluginId")
	return s
}

func firstString(primary, secondary *jsontree.Object, key string) string {
	if s, ok := primary.String(key); ok && s != "" {
		return s
	}
	if secondary != nil {
		s, _ := secondary.String(key)
		return s
	}
	return ""
}

func boxPosition(box, nested *jsontree.Object) *domain.BoxPosition {
	pos, ok := box.Object("position")
	if !ok && nested != nil {
		pos, ok = nested.Object("position")
	}
	if !ok {
		return nil
	}
	return &domain.BoxPosition{
		X:    scalarString(pos, "x"),
		Y:    scalarString(pos, "y"),
		Type: scalarString(pos, "type"),
	}
}

func scalarString(o *jsontree.Object, key string) string {
	v, _ := o.Get(key)
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// PredictSceneType estimates the studio scene type of a page. Video wins
// over audio, audio over text and image layouts.
func PredictSceneType(s *domain.SceneStats) string {
	text, image, audio, video := s.TextCount, s.ImageCount, s.AudioCount, s.VideoCount

	if video > 0 {
		switch {
		case text > 0 && image > 0:
			return "Type12"
		case text > 0:
			return "Type13"
		default:
			return "Type14"
		}
	}

	if audio > 0 && text > 0 {
		if image > 0 {
			return "Type10"
		}
		return "Type11"
	}

	if text > 0 && image == 0 && audio == 0 {
		switch text {
		case 1:
			return "Type1"
		case 2:
			return "Type2"
		case 3:
			return "Type3"
		case 4:
			return "Type4"
		default:
			return "Type23"
		}
	}

	if text > 0 && image > 0 {
		switch {
		case image == 1:
			switch text {
			case 1:
				return "Type5"
			case 2:
				return "Type6"
			case 3:
				return "Type7"
			case 4:
				return "Type8"
			default:
				return "Type24"
			}
		case image == 2:
			switch {
			case text <= 3:
				return "Type25"
			case text <= 5:
				return "Type26"
			default:
				return "Type27"
			}
		case image == 3:
			if text <= 4 {
				return "Type28"
			}
			return "Type29"
		default:
			switch {
			case text <= 3:
				return "Type30"
			case text <= 5:
				return "Type31"
			default:
				return "Type32"
			}
		}
	}

	if image > 0 && text == 0 {
		switch image {
		case 1:
			return "Type33"
		case 2:
			return "Type34"
		default:
			return "Type35"
		}
	}

	switch {
	case s.TotalBoxes == 0:
		return "Type0"
	case s.TotalBoxes == 1:
		return "Type1"
	case s.TotalBoxes <= 3:
		return "Type15"
	case s.TotalBoxes <= 5:
		return "Type16"
	default:
		return "Type17"
	}
}

// SceneService analyzes templates given inline or by path.
type SceneService interface {
	Analyze(ctx context.Context, template any, templatePath string) (*domain.SceneAnalysis, error)
	Predict(ctx context.Context, templatePath, pageID string) (*domain.SceneStats, error)
}

type sceneService struct {
	store     TemplateStore
	predictor ScenePredictor
}

func NewSceneService(store TemplateStore) SceneService {
	return &sceneService{store: store}
}

func (s *sceneService) Analyze(ctx context.Context, template any, templatePath string) (*domain.SceneAnalysis, error) {
	var tree *jsontree.Object
	switch {
	case template != nil:
		obj, ok := template.(*jsontree.Object)
		if !ok {
			return nil, domain.NewInvalidInputError("template must be a JSON object")
		}
		tree = obj
	case templatePath != "":
		obj, err := s.load(ctx, templatePath)
		if err != nil {
			return nil, err
		}
		tree = obj
	default:
		return nil, domain.NewInvalidInputError("Either template or templatePath must be provided")
	}

	source := templatePath
	if source == "" || template != nil {
		source = "provided"
	}
	logger.Get().Info("Scene analysis requested", zap.String("template", source))
	return s.predictor.Analyze(tree), nil
}

func (s *sceneService) Predict(ctx context.Context, templatePath, pageID string) (*domain.SceneStats, error) {
	if templatePath == "" {
		return nil, domain.NewInvalidInputError("templatePath query parameter is required")
	}
	tree, err := s.load(ctx, templatePath)
	if err != nil {
		return nil, err
	}
	for _, scene := range s.predictor.AnalyzeBoxes(tree) {
		if scene.PageID == pageID {
			return scene, nil
		}
	}
	return nil, domain.NewNotFoundError("Scene not found for pageId: " + pageID)
}

func (s *sceneService) load(ctx context.Context, path string) (*jsontree.Object, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid template path: " + path)
	}
	file, err := s.store.Read(ctx, resolved)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFoundError("Template file not found: " + resolved)
		}
		return nil, err
	}
	tree, err := jsontree.ParseObject(file.Data)
	if err != nil {
		return nil, domain.NewInvalidInputError("Template file is not a valid JSON object: " + err.Error())
	}
	return tree, nil
}
