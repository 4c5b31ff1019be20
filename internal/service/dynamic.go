package service

import (
	"context"

	"course-converter/internal/catalog"
	"course-converter/internal/config"
	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/logger"
	"course-converter/internal/pagestyle"
	"course-converter/internal/tags"
	"course-converter/internal/template"
	"course-converter/internal/util"

	"go.uber.org/zap"
)

// DynamicTemplateService builds a course by injecting AI content into the
// reference template of a size and brand.
type DynamicTemplateService interface {
	Create(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.DynamicTemplateResult, error)
}

type dynamicTemplateService struct {
	builder  *tags.Builder
	injector *SkeletonInjector
	store    TemplateStore
	catalog  *catalog.Catalog
	cfg      *config.Config
}

func NewDynamicTemplateService(cfg *config.Config, cat *catalog.Catalog, store TemplateStore) DynamicTemplateService {
	dense := pagestyle.NewMapper(pagestyle.DynamicTable())
	return &dynamicTemplateService{
		builder:  tags.NewBuilder(dense),
		injector: NewSkeletonInjector(DenseNamespace(dense)),
		store:    store,
		catalog:  cat,
		cfg:      cfg,
	}
}

func (s *dynamicTemplateService) Create(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.DynamicTemplateResult, error) {
	if err := ai.Validate(); err != nil {
		return nil, err
	}
	size, brand := catalog.ParseTemplateType(templateType)
	logger.Get().Info("Creating dynamic template", zap.String("template_type", templateType),
		zap.String("size", size), zap.String("variant", brand))

	dir, fileName, err := s.catalog.ReferenceFile(size, brand)
	if err != nil {
		return nil, err
	}
	file, err := s.store.Read(ctx, s.cfg.TemplatePath(dir, fileName))
	if err != nil {
		return nil, err
	}
	tree, err := jsontree.ParseObject(file.Data)
	if err != nil {
		return nil, domain.NewTemplateCorruptionError(err).
			WithContext("file", fileName)
	}

	report := s.injector.Inject(tree, ai, s.builder.Build(ai))
	template.Repair(tree, s.cfg.Conversion.FallbackMediaURL)

	mapped := report.SectionsMapped + report.QuizzesMapped
	result := &domain.DynamicTemplateResult{
		Template: tree,
		TemplateInfo: domain.DynamicTemplateInfo{
			Size:           size,
			Variant:        brand,
			FileName:       fileName,
			BoxesCount:     countBoxes(tree),
			SectionsMapped: report.SectionsMapped,
			QuizzesMapped:  report.QuizzesMapped,
		},
		Stats: domain.DynamicTemplateStats{
			Sections:            len(ai.Sections),
			Quizzes:             len(ai.GeneralQuiz),
			TotalTags:           countInjectableFields(ai),
			ReplacedTags:        mapped,
			TemplateSize:        util.FormatMB(file.Size),
			DynamicBoxesCreated: mapped,
			HeuristicFallbacks:  report.HeuristicFallbacks,
		},
	}
	logger.Get().Info("Dynamic template created",
		zap.String("template_type", templateType),
		zap.Int("sections_mapped", report.SectionsMapped),
		zap.Int("quizzes_mapped", report.QuizzesMapped),
		zap.Int("heuristic_fallbacks", report.HeuristicFallbacks),
	)
	return result, nil
}

func countBoxes(tree *jsontree.Object) int {
	boxes, ok := tree.Path("present", "boxesById")
	if !ok {
		return 0
	}
	return boxes.Len()
}

// countInjectableFields counts the AI values a dynamic template can take:
// five course fields, then per section its title, narration, content, images
// and speech, and per quiz its question, options and correct answer.
func countInjectableFields(ai *domain.AIOutput) int {
	n := 0
	if ai.CourseInfo != nil {
		n += 5
	}
	for _, s := range ai.Sections {
		n += 3 + len(s.Images)
		if s.SpeechAudioURL != "" {
			n++
		}
	}
	for _, q := range ai.GeneralQuiz {
		n += 1 + len(q.Options)
		if len(q.CorrectAnswers) > 0 {
			n++
		}
	}
	return n
}
