package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"course-converter/internal/catalog"
	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/logger"
	"course-converter/internal/tags"
	"course-converter/internal/util"

	"go.uber.org/zap"
)

const (
	variantPageID      = "pa-variant-scene"
	variantHeadlineID  = "bo-variant-headline"
	variantDefaultName = "Variant Scene"
	pageIDPrefix       = "pa-"
)

// boxKeys are the box level properties of a flat present box.
var boxKeys = map[string]bool{
	"id": true, "parent": true, "container": true, "level": true, "col": true,
	"row": true, "position": true, "content": true, "draggable": true,
	"resizable": true, "showTextEditor": true, "fragment": true, "children": true,
	"sortableContainers": true, "containedViews": true,
}

const headlineBoxJSON = `{
  "box": {
    "id": "bo-variant-headline",
    "parent": "pa-variant-scene",
    "container": 0,
    "level": 0,
    "col": 0,
    "row": 0,
    "position": {"x": "10%", "y": "20%", "type": "absolute"},
    "content": {},
    "draggable": true,
    "resizable": true,
    "showTextEditor": false,
    "fragment": {},
    "children": [],
    "sortableContainers": {},
    "containedViews": []
  },
  "toolbar": {
    "id": "bo-variant-headline",
    "pluginId": "BasicText",
    "state": {"__text": ""},
    "structure": {"height": "auto", "width": 60, "widthUnit": "%", "heightUnit": "%", "rotation": 0, "aspectRatio": false, "position": "absolute", "x": "10%", "y": "20%"},
    "style": {"padding": 7, "backgroundColor": "rgba(255,255,255,0)", "borderWidth": 0, "borderStyle": "solid", "borderColor": "#000000", "borderRadius": 0, "opacity": 1},
    "showTextEditor": false,
    "position": {"x": "10%", "y": "20%", "type": "absolute"}
  },
  "marks": {},
  "childBoxes": {},
  "childToolbars": {}
}`

// RawTemplateAdapter reduces any template to a pages and boxesById scene.
type RawTemplateAdapter struct {
	headline *jsontree.Object
}

func NewRawTemplateAdapter() *RawTemplateAdapter {
	headline, err := jsontree.ParseObject([]byte(headlineBoxJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid headline box: %v", err))
	}
	return &RawTemplateAdapter{headline: headline}
}

func newScene(pages, boxes *jsontree.Object) *jsontree.Object {
	scene := jsontree.NewObject()
	scene.Set("pages", pages)
	scene.Set("boxesById", boxes)
	return scene
}

// defaultPage builds a page with the studio's default page settings.
func defaultPage(id, viewName string) *jsontree.Object {
	p := jsontree.NewObject()
	p.Set("id", id)
	p.Set("viewName", viewName)
	p.Set("breadcrumb", "hidden")
	p.Set("courseTitle", "hidden")
	p.Set("documentSubtitle", "hidden")
	p.Set("documentSubtitleContent", "Subtitle")
	p.Set("documentTitle", "hidden")
	p.Set("documentTitleContent", "")
	p.Set("numPage", "hidden")
	p.Set("numPageContent", json.Number("1"))
	p.Set("background", "#ffffff")
	p.Set("backgroundAttr", "")
	p.Set("aspectRatio", true)
	p.Set("isMandatory", true)
	p.Set("mandatoryType", catalog.WaitForSound)
	p.Set("backgroundZoom", json.Number("100"))
	p.Set("backgroundOpacity", json.Number("100"))
	return p
}

// BuildMinimalScene returns raw unchanged when it already has pages and
// boxesById, converts a present document, and otherwise synthesizes a single
// headline scene.
func (a *RawTemplateAdapter) BuildMinimalScene(raw any) *jsontree.Object {
	if raw == nil {
		return newScene(jsontree.NewObject(), jsontree.NewObject())
	}
	obj, ok := raw.(*jsontree.Object)
	if !ok {
		return a.headlineScene(variantDefaultName)
	}

	pages, hasPages := obj.Object("pages")
	boxes, hasBoxes := obj.Object("boxesById")
	if hasPages && hasBoxes {
		return newScene(pages, boxes)
	}
	if _, ok := obj.Path("present", "boxesById"); ok {
		return a.convertPresent(obj)
	}

	title, ok := extractTitle(obj)
	if !ok {
		title = variantDefaultName
	}
	return a.headlineScene(title)
}

func extractTitle(raw *jsontree.Object) (string, bool) {
	if t, ok := raw.String("training-title"); ok && t != "" {
		return t, true
	}
	if t, ok := raw.String("title"); ok && t != "" {
		return t, true
	}
	if gc, ok := raw.Path("present", "globalConfig"); ok {
		if t, ok := gc.String("title"); ok && t != "" {
			return t, true
		}
	}
	return "", false
}

func (a *RawTemplateAdapter) headlineScene(title string) *jsontree.Object {
	pages := jsontree.NewObject()
	pages.Set(variantPageID, defaultPage(variantPageID, title))

	box := jsontree.Clone(a.headline).(*jsontree.Object)
	if state, ok := box.Path("toolbar", "state"); ok {
		state.Set("__text", util.EncodeURIComponent("<p><strong>"+title+"</strong></p>"))
	}
	boxes := jsontree.NewObject()
	boxes.Set(variantHeadlineID, box)
	return newScene(pages, boxes)
}

func (a *RawTemplateAdapter) convertPresent(raw *jsontree.Object) *jsontree.Object {
	present, _ := raw.Object("present")
	srcBoxes, _ := present.Object("boxesById")

	viewName, ok := extractTitle(raw)
	if !ok {
		viewName = tags.Placeholder("type0:title")
	}

	pages := jsontree.NewObject()
	for _, id := range srcBoxes.Keys() {
		data, ok := srcBoxes.Object(id)
		if !ok {
			continue
		}
		parent, _ := data.String("parent")
		if parent == "" {
			if nested, ok := data.Object("box"); ok {
				parent, _ = nested.String("parent")
			}
		}
		if strings.HasPrefix(parent, pageIDPrefix) && !pages.Has(parent) {
			pages.Set(parent, defaultPage(parent, viewName))
		}
	}

	pluginToolbars, _ := present.Object("pluginToolbarsById")
	viewToolbars, _ := present.Object("viewToolbarsById")

	boxes := jsontree.NewObject()
	for _, id := range srcBoxes.Keys() {
		data, ok := srcBoxes.Object(id)
		if !ok {
			continue
		}
		if data.Has("box") && data.Has("toolbar") {
			boxes.Set(id, data)
			continue
		}

		props := jsontree.NewObject()
		for _, k := range data.Keys() {
			if boxKeys[k] {
				v, _ := data.Get(k)
				props.Set(k, v)
			}
		}

		entry := jsontree.NewObject()
		entry.Set("box", props)
		entry.Set("toolbar", lookupToolbar(id, pluginToolbars, viewToolbars))
		for _, k := range []string{"marks", "childBoxes", "childToolbars"} {
			if v, ok := data.Get(k); ok && v != nil {
				entry.Set(k, v)
			} else {
				entry.Set(k, jsontree.NewObject())
			}
		}
		boxes.Set(id, entry)
	}
	return newScene(pages, boxes)
}

func lookupToolbar(id string, sources ...*jsontree.Object) *jsontree.Object {
	for _, src := range sources {
		if src == nil {
			continue
		}
		if tb, ok := src.Object(id); ok {
			return tb
		}
	}
	tb := jsontree.NewObject()
	tb.Set("id", id)
	return tb
}

// VariantApplier restyles every page of a scene for a variant.
type VariantApplier struct{}

// Apply returns a restyled copy of scene; scene itself is not modified.
func (VariantApplier) Apply(scene *jsontree.Object, feature catalog.VariantFeature) *jsontree.Object {
	if scene == nil {
		return nil
	}
	out := jsontree.Clone(scene).(*jsontree.Object)
	pages, ok := out.Object("pages")
	if !ok {
		return out
	}

	for _, id := range pages.Keys() {
		page, ok := pages.Object(id)
		if !ok {
			continue
		}
		switch feature.Background.Style {
		case catalog.BackgroundSolid:
			page.Set("background", feature.Background.Value)
			setIfNull(page, "backgroundAttr", "")
		case catalog.BackgroundImage:
			page.Set("background", feature.Background.Value)
			page.Set("backgroundAttr", "full")
		case catalog.BackgroundVideo:
			setIfNull(page, "background", "#ffffff")
			setIfNull(page, "backgroundAttr", "")
		}
		page.Set("isMandatory", feature.Mandatory.IsMandatory)
		page.Set("mandatoryType", feature.Mandatory.Type)
	}
	return out
}

func setIfNull(o *jsontree.Object, key string, value any) {
	if v, ok := o.Get(key); ok && v != nil {
		return
	}
	o.Set(key, value)
}

// VariantRequest selects a base template, either inline or by size and brand.
type VariantRequest struct {
	Template any
	Size     string
	Brand    string
	Variant  string
}

// VariantService generates brand variant scenes.
type VariantService interface {
	Generate(ctx context.Context, req VariantRequest) (*domain.VariantResult, error)
	Variants() []string
}

type variantService struct {
	templates TemplateRequestService
	catalog   *catalog.Catalog
	adapter   *RawTemplateAdapter
	applier   VariantApplier
	replacer  *tags.Replacer
}

func NewVariantService(cat *catalog.Catalog, templates TemplateRequestService) VariantService {
	return &variantService{
		templates: templates,
		catalog:   cat,
		adapter:   NewRawTemplateAdapter(),
		replacer:  tags.NewReplacer(),
	}
}

func (s *variantService) Variants() []string {
	return s.catalog.Variants()
}

func (s *variantService) Generate(ctx context.Context, req VariantRequest) (*domain.VariantResult, error) {
	var (
		raw  any
		base domain.VariantBase
	)
	switch {
	case req.Template != nil:
		logger.Get().Info("Variant generation requested",
			zap.String("base", "provided template"), zap.String("variant", req.Variant))
		raw = req.Template
		base.Provided = true
	case req.Size != "" && req.Brand != "":
		logger.Get().Info("Variant generation requested",
			zap.String("base", req.Size+"-"+req.Brand), zap.String("variant", req.Variant))
		tmpl, err := s.templates.Get(ctx, req.Size, req.Brand)
		if err != nil {
			return nil, err
		}
		raw = s.parseBase(tmpl.Template)
		base.Size, base.Brand = req.Size, req.Brand
	default:
		return nil, domain.NewInvalidInputError("Either base.template or base.size+brand must be provided")
	}

	scene := s.adapter.BuildMinimalScene(raw)
	feature, ok := s.catalog.Variant(req.Variant)
	if !ok {
		return nil, domain.NewNotFoundError("Unknown variant: " + req.Variant)
	}

	return &domain.VariantResult{
		Base:     base,
		Variant:  req.Variant,
		Template: s.applier.Apply(scene, feature),
	}, nil
}

// parseBase fills every placeholder of a raw template with its default so it
// can be parsed. A template that still does not parse is returned as text,
// which the adapter turns into a headline scene.
func (s *variantService) parseBase(text string) any {
	mapping := domain.TagMapping{}
	tags.FillDefaults(mapping, tags.Names(text))
	filled, _ := s.replacer.ReplaceText(text, mapping)
	node, err := jsontree.Parse([]byte(filled))
	if err != nil {
		logger.Get().Warn("Base template does not parse after default substitution, using a synthesized scene",
			zap.Error(err))
		return text
	}
	return node
}
