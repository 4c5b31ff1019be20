package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"course-converter/internal/catalog"
	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/logger"
	"course-converter/internal/tags"
	"course-converter/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Intro template tag names.
const (
	TagType0Title     = "type0:title"
	TagType0ImageURL  = "type0:imageurl"
	TagType0TitleHTML = "type0:title-html"
	TagMandatory      = "ai-mandatory"
)

const (
	titleHTMLPrefix = "%3Cp%3E%3Cspan%20style=%22font-size:3.5714285714285716em;%22%3E%3Cspan%20style=%22font-family:Alata,sans-serif;%22%3E%3Cspan%20style=%22color:#ffffff;%22%3E"
	titleHTMLSuffix = "%3C/span%3E%3C/span%3E%3C/span%3E%3C/p%3E%0A"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// TitleHTML renders a title as the encoded rich text of the intro title box.
func TitleHTML(title string) string {
	return titleHTMLPrefix + util.EncodeURIComponent(htmlEscaper.Replace(title)) + titleHTMLSuffix
}

// Type0Service generates intro scenes.
type Type0Service interface {
	Generate(ctx context.Context, brand string, content domain.Type0Content) (*domain.Type0Result, error)
	// GenerateFromTemplateType takes the brand from the last part of a
	// template type such as "Capsule-Blue".
	GenerateFromTemplateType(ctx context.Context, templateType string, content domain.Type0Content) (*domain.Type0Result, error)
	Brands() []string
}

type type0Service struct {
	catalog  *catalog.Catalog
	replacer *tags.Replacer
	newID    func() string
	now      func() time.Time
}

func NewType0Service(cat *catalog.Catalog) Type0Service {
	return &type0Service{
		catalog:  cat,
		replacer: tags.NewReplacer(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *type0Service) Brands() []string {
	return s.catalog.Type0Brands()
}

func (s *type0Service) GenerateFromTemplateType(ctx context.Context, templateType string, content domain.Type0Content) (*domain.Type0Result, error) {
	brand := catalog.ExtractBrand(templateType)
	logger.Get().Info("Generating intro scene from template type",
		zap.String("template_type", templateType), zap.String("brand", brand))
	return s.Generate(ctx, brand, content)
}

func (s *type0Service) Generate(_ context.Context, brand string, content domain.Type0Content) (*domain.Type0Result, error) {
	tmpl, ok := s.catalog.Type0(brand)
	if !ok {
		return nil, domain.NewInvalidInputError("Template not found for brand: " + brand)
	}

	mapping := domain.TagMapping{
		TagType0Title:     domain.StringTag(content.Title),
		TagType0ImageURL:  domain.StringTag(content.ImageURL),
		TagType0TitleHTML: domain.StringTag(TitleHTML(content.Title)),
		TagMandatory:      domain.StringTag(strconv.FormatBool(content.Mandatory)),
	}

	pageID := "pa-" + s.newID()
	page := s.fill(tmpl.Page, mapping, content.Mandatory)
	page.Set("id", pageID)

	boxes := jsontree.NewObject()
	textID := "bo-text-" + s.newID()
	boxes.Set(textID, relink(s.fill(tmpl.TextBox, mapping, content.Mandatory), textID, pageID))
	if content.ImageURL != "" && tmpl.ImageBox != nil {
		imageID := "bo-image-" + s.newID()
		boxes.Set(imageID, relink(s.fill(tmpl.ImageBox, mapping, content.Mandatory), imageID, pageID))
	}

	pages := jsontree.NewObject()
	pages.Set(pageID, page)
	template := jsontree.NewObject()
	template.Set("pages", pages)
	template.Set("boxesById", boxes)

	logger.Get().Info("Intro scene generated", zap.String("brand", brand), zap.String("page_id", pageID))
	return &domain.Type0Result{
		Template: template,
		Metadata: domain.Type0Metadata{
			Brand:       brand,
			SceneIndex:  tmpl.SceneIndex,
			GeneratedAt: s.now().UTC().Format(isoMillis),
			ContentUsed: content,
		},
	}, nil
}

// fill turns a value that is exactly the mandatory token into a boolean and
// substitutes every other tag inside strings.
func (s *type0Service) fill(obj *jsontree.Object, mapping domain.TagMapping, mandatory bool) *jsontree.Object {
	token := tags.Placeholder(TagMandatory)
	jsontree.Walk(obj, func(parent *jsontree.Object, key string, value any) {
		if str, ok := value.(string); ok && parent != nil && str == token {
			parent.Set(key, mandatory)
		}
	})
	s.replacer.ReplaceTree(obj, mapping)
	return obj
}

// relink gives a box a fresh id and attaches it to pageID.
func relink(box *jsontree.Object, id, pageID string) *jsontree.Object {
	if b, ok := box.Object("box"); ok {
		b.Set("id", id)
		b.Set("parent", pageID)
	}
	if tb, ok := box.Object("toolbar"); ok {
		tb.Set("id", id)
	}
	return box
}
