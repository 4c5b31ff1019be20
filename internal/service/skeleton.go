package service

import (
	"math"
	"strings"

	"course-converter/internal/domain"
	"course-converter/internal/extractor"
	"course-converter/internal/jsontree"
	"course-converter/internal/logger"
	"course-converter/internal/pagestyle"

	"go.uber.org/zap"
)

// NamespaceFunc names the box type a section should land in.
type NamespaceFunc func(section domain.Section, index int) string

// MapperNamespace resolves sections through a page style mapper.
func MapperNamespace(mapper *pagestyle.Mapper) NamespaceFunc {
	return func(section domain.Section, _ int) string {
		return mapper.ToType(section.PageStyle)
	}
}

// DenseNamespace resolves sections through the dense table. A section without
// a page style takes the code of its one-based position.
func DenseNamespace(mapper *pagestyle.Mapper) NamespaceFunc {
	return func(section domain.Section, index int) string {
		code := section.PageStyle
		if code == 0 {
			code = pagestyle.Code(index + 1)
		}
		return mapper.ToType(code)
	}
}

// BoxMatcher is one step of the section to box matching chain.
type BoxMatcher struct {
	Name string
	// Exact matchers do not count as a heuristic fallback.
	Exact bool
	Match func(boxes *jsontree.Object, namespace string, index int) (string, bool)
}

var (
	ExactTypeMatcher = BoxMatcher{
		Name:  "exact_type",
		Exact: true,
		Match: func(boxes *jsontree.Object, namespace string, _ int) (string, bool) {
			for _, id := range boxes.Keys() {
				box, ok := boxes.Object(id)
				if !ok {
					continue
				}
				if t, _ := box.String("type"); t == namespace {
					return id, true
				}
				if p := paginationOf(box); p != nil {
					if t, _ := p.String("type"); t == namespace {
						return id, true
					}
				}
			}
			return "", false
		},
	}

	PositionalIndexMatcher = BoxMatcher{
		Name: "positional_index",
		Match: func(boxes *jsontree.Object, _ string, index int) (string, bool) {
			keys := boxes.Keys()
			if index < 0 || index >= len(keys) {
				return "", false
			}
			return keys[index], true
		},
	}

	FirstAvailableMatcher = BoxMatcher{
		Name: "first_available",
		Match: func(boxes *jsontree.Object, _ string, _ int) (string, bool) {
			keys := boxes.Keys()
			if len(keys) == 0 {
				return "", false
			}
			return keys[0], true
		},
	}
)

// DefaultBoxMatchers is the type, then position, then first box chain.
func DefaultBoxMatchers() []BoxMatcher {
	return []BoxMatcher{ExactTypeMatcher, PositionalIndexMatcher, FirstAvailableMatcher}
}

// InjectionReport counts what an injection touched.
type InjectionReport struct {
	SectionsMapped     int
	QuizzesMapped      int
	HeuristicFallbacks int
}

// SkeletonInjector writes AI content directly into the boxes of a finished
// skeleton document instead of substituting placeholders.
type SkeletonInjector struct {
	namespace NamespaceFunc
	matchers  []BoxMatcher
}

func NewSkeletonInjector(namespace NamespaceFunc, matchers ...BoxMatcher) *SkeletonInjector {
	if namespace == nil {
		namespace = MapperNamespace(pagestyle.NewMapper(pagestyle.DefaultTable()))
	}
	if len(matchers) == 0 {
		matchers = DefaultBoxMatchers()
	}
	return &SkeletonInjector{namespace: namespace, matchers: matchers}
}

// Inject mutates skeleton in place. Only keys already present in a box are
// written, and only with non-empty values, so the skeleton's key order is
// kept.
func (s *SkeletonInjector) Inject(skeleton *jsontree.Object, ai *domain.AIOutput, tagMap domain.TagMapping) InjectionReport {
	var report InjectionReport
	present, ok := skeleton.Object("present")
	if !ok || ai == nil {
		return report
	}

	if gc, ok := present.Object("globalConfig"); ok {
		injectGlobalConfig(gc, tagMap)
	}

	boxes, ok := present.Object("boxesById")
	if !ok || boxes.Len() == 0 {
		return report
	}

	for i, section := range ai.Sections {
		ns := s.namespace(section, i)
		id, matcher, ok := s.match(boxes, ns, i)
		if !ok {
			continue
		}
		if !matcher.Exact {
			report.HeuristicFallbacks++
			logger.Get().Warn("Heuristic box match for section",
				zap.Int("section_index", i),
				zap.String("namespace", ns),
				zap.String("matcher", matcher.Name),
				zap.String("box_id", id),
			)
		}
		box, _ := boxes.Object(id)
		if p := paginationOf(box); p != nil {
			injectSection(p, section)
		}
		report.SectionsMapped++
	}

	for i, quiz := range ai.GeneralQuiz {
		id, exact, ok := findQuizBox(boxes, i)
		if !ok {
			continue
		}
		if !exact {
			report.HeuristicFallbacks++
			logger.Get().Warn("Heuristic box match for quiz",
				zap.Int("quiz_index", i),
				zap.String("box_id", id),
			)
		}
		box, _ := boxes.Object(id)
		if p := paginationOf(box); p != nil {
			injectQuiz(p, extractor.FormatQuiz(quiz))
		}
		report.QuizzesMapped++
	}

	return report
}

func (s *SkeletonInjector) match(boxes *jsontree.Object, ns string, index int) (string, BoxMatcher, bool) {
	for _, m := range s.matchers {
		if id, ok := m.Match(boxes, ns, index); ok {
			return id, m, true
		}
	}
	return "", BoxMatcher{}, false
}

func paginationOf(box *jsontree.Object) *jsontree.Object {
	if box == nil {
		return nil
	}
	p, ok := box.Object("pagination")
	if !ok {
		return nil
	}
	return p
}

func injectGlobalConfig(gc *jsontree.Object, tagMap domain.TagMapping) {
	set := func(key, tag string) {
		if v, ok := tagMap[tag]; ok && v.Truthy() {
			gc.Set(key, v.Value())
		}
	}
	set("title", extractor.TagTrainingTitle)
	set("description", extractor.TagTrainingDescription)
	set("thumbnail", extractor.TagCoverImageURL)

	if d, ok := tagMap[extractor.TagCoverAudioDuration]; ok && d.IsNumber() && d.Truthy() {
		secs := d.Number()
		lt := jsontree.NewObject()
		lt.Set("h", domain.NumberTag(0).Value())
		lt.Set("m", domain.NumberTag(math.Floor(secs/60)).Value())
		lt.Set("s", domain.NumberTag(math.Mod(secs, 60)).Value())
		gc.Set("typicalLearningTime", lt)
	}
}

// setExisting writes value only when key is already in p and value is not empty.
func setExisting(p *jsontree.Object, key string, value any) {
	if !p.Has(key) {
		return
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return
		}
	case float64:
		if v == 0 {
			return
		}
		value = domain.NumberTag(v).Value()
	case []any:
		if len(v) == 0 {
			return
		}
	}
	p.Set(key, value)
}

func injectSection(p *jsontree.Object, section domain.Section) {
	setExisting(p, "title", section.Title)
	setExisting(p, "narration", section.NarrationText)
	setExisting(p, "content", extractor.RenderContent(section.Content))

	if len(section.Images) > 0 {
		setExisting(p, extractor.FieldImageURL, section.Images[0].ImageURL)
	}
	if len(section.Images) > 1 {
		setExisting(p, extractor.FieldImageURL2, section.Images[1].ImageURL)
	}
	if slots, ok := p.Get("images"); ok {
		if arr, ok := slots.([]any); ok {
			for i, img := range section.Images {
				if i < len(arr) && img.ImageURL != "" {
					arr[i] = img.ImageURL
				}
			}
		}
	}

	setExisting(p, extractor.FieldSpeech, section.SpeechAudioURL)
	setExisting(p, "audio", section.SpeechAudioURL)
	setExisting(p, extractor.FieldAudioDuration, section.AudioDuration)
}

func injectQuiz(p *jsontree.Object, q extractor.QuizView) {
	setExisting(p, "question", q.Question)
	setExisting(p, "options", jsontree.StringSlice(q.Options))
	setExisting(p, "correct", jsontree.StringSlice(q.CorrectAnswers))
	setExisting(p, "correctAnswers", jsontree.StringSlice(q.CorrectAnswers))

	if len(q.Statements) > 0 {
		items := make([]any, 0, len(q.Statements))
		for _, st := range q.Statements {
			item := jsontree.NewObject()
			item.Set("statement", st.Statement)
			item.Set("answer", st.Answer)
			items = append(items, item)
		}
		setExisting(p, "statements", items)
	}
}

var quizBoxHints = []string{"quiz", "question", "test"}

// findQuizBox looks for a quiz-like box, then falls back to the last three
// boxes by quiz position, then to the final box. exact is false for the
// fallbacks.
func findQuizBox(boxes *jsontree.Object, index int) (id string, exact bool, ok bool) {
	keys := boxes.Keys()
	if len(keys) == 0 {
		return "", false, false
	}
	for _, k := range keys {
		box, isObj := boxes.Object(k)
		if !isObj {
			continue
		}
		t, _ := box.String("type")
		t = strings.ToLower(t)
		for _, hint := range quizBoxHints {
			if t != "" && strings.Contains(t, hint) {
				return k, true, true
			}
		}
		if p := paginationOf(box); p != nil && p.Has("question") {
			return k, true, true
		}
	}

	last := keys
	if len(last) > 3 {
		last = last[len(last)-3:]
	}
	if index < len(last) {
		return last[index], false, true
	}
	return keys[len(keys)-1], false, true
}
