package service

import (
	"context"
	"errors"
	"path/filepath"

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

// ConversionService turns AI output into a finished e-learning template.
type ConversionService interface {
	// Convert substitutes the tags of ai into templateText.
	Convert(ctx context.Context, ai *domain.AIOutput, templateText string) (*domain.ConversionResult, error)
	// ConvertFile converts files on disk and persists the result.
	ConvertFile(ctx context.Context, aiPath, templatePath string) (*domain.FileConversionResult, error)
	// ConvertXL injects ai into the built-in skeleton of an XL template type.
	ConvertXL(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.ConversionResult, error)
}

type conversionService struct {
	builder  *tags.Builder
	replacer *tags.Replacer
	injector *SkeletonInjector
	store    TemplateStore
	outputs  OutputStore
	catalog  *catalog.Catalog
	cfg      *config.Config
}

// NewConversionService wires a conversion service. mapper resolves page
// styles for both placeholder substitution and XL skeleton injection.
func NewConversionService(cfg *config.Config, cat *catalog.Catalog, mapper *pagestyle.Mapper, store TemplateStore, outputs OutputStore) ConversionService {
	if mapper == nil {
		mapper = pagestyle.NewMapper(pagestyle.DefaultTable())
	}
	return &conversionService{
		builder:  tags.NewBuilder(mapper),
		replacer: tags.NewReplacer(),
		injector: NewSkeletonInjector(MapperNamespace(mapper)),
		store:    store,
		outputs:  outputs,
		catalog:  cat,
		cfg:      cfg,
	}
}

// conversionRun tracks the stage and statistics of one conversion.
type conversionRun struct {
	stage domain.Stage
	stats domain.ConversionStats
}

func newRun(ai *domain.AIOutput) *conversionRun {
	r := &conversionRun{stage: domain.StageLoaded}
	if ai != nil {
		r.stats.Sections = len(ai.Sections)
		r.stats.Quizzes = len(ai.GeneralQuiz)
	}
	return r
}

func (r *conversionRun) advance(stage domain.Stage) {
	logger.Get().Debug("Conversion stage reached", zap.String("stage", string(stage)))
	r.stage = stage
}

// fail moves the run to the failed stage and attaches the stage that failed
// and the statistics gathered so far.
func (r *conversionRun) fail(err error) error {
	failedAt := r.stage
	r.stage = domain.StageFailed

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewInternalError("conversion failed", err)
	}
	logger.Get().Error("Conversion failed",
		zap.String("stage", string(failedAt)),
		zap.String("code", string(domainErr.Code)),
		zap.Error(err),
	)
	return domainErr.WithContext("stage", failedAt).WithContext("stats", r.stats)
}

func (s *conversionService) Convert(ctx context.Context, ai *domain.AIOutput, templateText string) (*domain.ConversionResult, error) {
	run := newRun(ai)
	if err := ai.Validate(); err != nil {
		return nil, run.fail(err)
	}
	logger.Get().Info("Starting conversion",
		zap.Int("sections", run.stats.Sections),
		zap.Int("quizzes", run.stats.Quizzes),
		zap.String("substitution", s.cfg.Conversion.Substitution),
	)

	mapping := s.builder.Build(ai)
	if s.cfg.Conversion.FillDefaults {
		tags.FillDefaults(mapping, tags.Names(templateText))
	}
	run.stats.TotalTags = len(mapping)
	run.advance(domain.StageTagsBuilt)

	var (
		node any
		err  error
	)
	if s.cfg.Conversion.Substitution == config.SubstitutionTree {
		node, err = s.substituteTree(run, templateText, mapping)
		if err != nil {
			return nil, run.fail(err)
		}
	}
	if node == nil {
		node, err = s.substituteText(run, templateText, mapping)
		if err != nil {
			return nil, run.fail(err)
		}
	}

	run.stats.RepairedFields = template.Repair(node, s.cfg.Conversion.FallbackMediaURL)
	run.advance(domain.StageRepaired)
	run.advance(domain.StageDone)

	logger.Get().Info("Conversion completed",
		zap.Int("total_tags", run.stats.TotalTags),
		zap.Int("replaced_tags", run.stats.ReplacedTags),
		zap.Int("unresolved_tags", run.stats.UnresolvedTags),
		zap.Int("repaired_fields", run.stats.RepairedFields),
	)
	return &domain.ConversionResult{
		Template: node,
		Stats:    run.stats,
		Stage:    run.stage,
		Tags:     mapping,
	}, nil
}

// substituteTree parses the raw template first and substitutes inside string
// leaves. It returns a nil node without error when the raw template is not
// JSON, in which case the caller falls back to text substitution.
func (s *conversionService) substituteTree(run *conversionRun, templateText string, mapping domain.TagMapping) (any, error) {
	node, err := jsontree.Parse([]byte(templateText))
	if err != nil {
		logger.Get().Warn("Raw template is not valid JSON, falling back to text substitution", zap.Error(err))
		return nil, nil
	}

	node, replaced := s.replacer.ReplaceTree(node, mapping)
	run.stats.ReplacedTags = replaced
	run.advance(domain.StageSubstituted)

	if s.cfg.Conversion.OnUnresolvedTag == config.UnresolvedFail {
		if left := tags.UnresolvedTree(node); len(left) > 0 {
			run.stats.UnresolvedTags = len(left)
			return nil, domain.NewUnresolvedTagsError(left)
		}
	} else {
		var stripped []string
		node, stripped = tags.StripUnresolvedTree(node)
		run.stats.UnresolvedTags = len(stripped)
		logStripped(stripped)
	}
	run.advance(domain.StageParsed)
	return node, nil
}

func (s *conversionService) substituteText(run *conversionRun, templateText string, mapping domain.TagMapping) (any, error) {
	text, replaced := s.replacer.ReplaceText(templateText, mapping)
	run.stats.ReplacedTags = replaced
	run.advance(domain.StageSubstituted)

	if s.cfg.Conversion.OnUnresolvedTag == config.UnresolvedFail {
		if left := tags.Names(text); len(left) > 0 {
			run.stats.UnresolvedTags = len(left)
			return nil, domain.NewUnresolvedTagsError(left)
		}
	} else {
		var stripped []string
		text, stripped = tags.StripUnresolved(text)
		run.stats.UnresolvedTags = len(stripped)
		logStripped(stripped)
	}

	node, err := jsontree.Parse([]byte(text))
	if err != nil {
		return nil, domain.NewTemplateCorruptionError(err)
	}
	run.advance(domain.StageParsed)
	return node, nil
}

func logStripped(names []string) {
	if len(names) == 0 {
		return
	}
	logger.Get().Warn("Stripped unresolved placeholders",
		zap.Int("count", len(names)),
		zap.Strings("tags", names),
	)
}

func (s *conversionService) ConvertFile(ctx context.Context, aiPath, templatePath string) (*domain.FileConversionResult, error) {
	aiFile, err := s.store.Read(ctx, aiPath)
	if err != nil {
		return nil, err
	}
	ai, err := domain.ParseAIOutput(aiFile.Data)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.store.Read(ctx, templatePath)
	if err != nil {
		return nil, err
	}

	result, err := s.Convert(ctx, ai, string(tmpl.Data))
	if err != nil {
		return nil, err
	}

	outPath, size, err := s.outputs.Save(ctx, result.Template, "converted")
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Converted template saved", zap.String("path", outPath), zap.Int64("bytes", size))

	return &domain.FileConversionResult{
		OutputPath: outPath,
		FileName:   filepath.Base(outPath),
		FileSize:   util.FormatMB(size),
		Stats:      result.Stats,
	}, nil
}

func (s *conversionService) ConvertXL(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.ConversionResult, error) {
	run := newRun(ai)
	if err := ai.Validate(); err != nil {
		return nil, run.fail(err)
	}

	xl, ok := s.catalog.XL(templateType)
	if !ok {
		return nil, run.fail(domain.NewNotFoundError("RawXL template file not found for XL conversion"))
	}
	raw, err := s.store.Read(ctx, s.cfg.TemplatePath(xl.RawTemplate))
	if err != nil {
		if isNotFound(err) {
			return nil, run.fail(domain.NewNotFoundError("RawXL template file not found for XL conversion"))
		}
		return nil, run.fail(err)
	}
	skeletonFile, err := s.store.Read(ctx, s.cfg.TemplatePath(xl.Skeleton))
	if err != nil {
		if isNotFound(err) {
			return nil, run.fail(domain.NewNotFoundError("Skeleton FinalOutput not found"))
		}
		return nil, run.fail(err)
	}

	mapping := s.builder.BuildForTemplate(ai, string(raw.Data))
	run.stats.TotalTags = len(mapping)
	run.advance(domain.StageTagsBuilt)

	skeleton, err := jsontree.ParseObject(skeletonFile.Data)
	if err != nil {
		return nil, run.fail(domain.NewTemplateCorruptionError(err))
	}
	report := s.injector.Inject(skeleton, ai, mapping)
	run.stats.ReplacedTags = report.SectionsMapped + report.QuizzesMapped
	run.stats.HeuristicFallbacks = report.HeuristicFallbacks
	run.advance(domain.StageSubstituted)
	run.advance(domain.StageParsed)

	run.stats.RepairedFields = template.Repair(skeleton, s.cfg.Conversion.FallbackMediaURL)
	run.advance(domain.StageRepaired)
	run.advance(domain.StageDone)

	logger.Get().Info("XL skeleton conversion completed",
		zap.String("template_type", templateType),
		zap.Int("sections_mapped", report.SectionsMapped),
		zap.Int("quizzes_mapped", report.QuizzesMapped),
		zap.Int("heuristic_fallbacks", report.HeuristicFallbacks),
	)
	return &domain.ConversionResult{
		Template: skeleton,
		Stats:    run.stats,
		Stage:    run.stage,
		Tags:     mapping,
	}, nil
}

func isNotFound(err error) bool {
	var domainErr *domain.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == domain.CodeNotFound
}
