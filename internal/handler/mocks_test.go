package handler_test

import (
	"context"
	"os"
	"time"

	"course-converter/internal/domain"
	"course-converter/internal/service"
)

// --- Manual Mocks ---

type MockConversionService struct {
	ConvertFunc     func(ctx context.Context, ai *domain.AIOutput, templateText string) (*domain.ConversionResult, error)
	ConvertFileFunc func(ctx context.Context, aiPath, templatePath string) (*domain.FileConversionResult, error)
	ConvertXLFunc   func(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.ConversionResult, error)
}

func (m *MockConversionService) Convert(ctx context.Context, ai *domain.AIOutput, templateText string) (*domain.ConversionResult, error) {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, ai, templateText)
	}
	panic("MockConversionService.ConvertFunc not implemented")
}

func (m *MockConversionService) ConvertFile(ctx context.Context, aiPath, templatePath string) (*domain.FileConversionResult, error) {
	if m.ConvertFileFunc != nil {
		return m.ConvertFileFunc(ctx, aiPath, templatePath)
	}
	panic("MockConversionService.ConvertFileFunc not implemented")
}

func (m *MockConversionService) ConvertXL(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.ConversionResult, error) {
	if m.ConvertXLFunc != nil {
		return m.ConvertXLFunc(ctx, ai, templateType)
	}
	panic("MockConversionService.ConvertXLFunc not implemented")
}

type MockDynamicTemplateService struct {
	CreateFunc func(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.DynamicTemplateResult, error)
}

func (m *MockDynamicTemplateService) Create(ctx context.Context, ai *domain.AIOutput, templateType string) (*domain.DynamicTemplateResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ai, templateType)
	}
	panic("MockDynamicTemplateService.CreateFunc not implemented")
}

type MockOutputStore struct {
	ListFunc func(ctx context.Context) ([]domain.OutputFile, error)
}

func (m *MockOutputStore) Save(_ context.Context, _ any, _ string) (string, int64, error) {
	panic("not implemented in mock")
}

func (m *MockOutputStore) List(ctx context.Context) ([]domain.OutputFile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	panic("MockOutputStore.ListFunc not implemented")
}

func (m *MockOutputStore) Dir() string { return os.TempDir() }

type MockTemplateRequestService struct {
	GetFunc               func(ctx context.Context, size, brand string) (*domain.RawTemplate, error)
	ListFunc              func(ctx context.Context) ([]domain.TemplateListing, error)
	ListTemplateFilesFunc func(ctx context.Context) ([]domain.TemplateFileGroup, error)
}

func (m *MockTemplateRequestService) Get(ctx context.Context, size, brand string) (*domain.RawTemplate, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, size, brand)
	}
	panic("MockTemplateRequestService.GetFunc not implemented")
}

func (m *MockTemplateRequestService) List(ctx context.Context) ([]domain.TemplateListing, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	panic("MockTemplateRequestService.ListFunc not implemented")
}

func (m *MockTemplateRequestService) ListTemplateFiles(ctx context.Context) ([]domain.TemplateFileGroup, error) {
	if m.ListTemplateFilesFunc != nil {
		return m.ListTemplateFilesFunc(ctx)
	}
	panic("MockTemplateRequestService.ListTemplateFilesFunc not implemented")
}

type MockVariantService struct {
	GenerateFunc func(ctx context.Context, req service.VariantRequest) (*domain.VariantResult, error)
	VariantsFunc func() []string
}

func (m *MockVariantService) Generate(ctx context.Context, req service.VariantRequest) (*domain.VariantResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockVariantService.GenerateFunc not implemented")
}

func (m *MockVariantService) Variants() []string {
	if m.VariantsFunc != nil {
		return m.VariantsFunc()
	}
	panic("MockVariantService.VariantsFunc not implemented")
}

type MockSceneService struct {
	AnalyzeFunc func(ctx context.Context, template any, templatePath string) (*domain.SceneAnalysis, error)
	PredictFunc func(ctx context.Context, templatePath, pageID string) (*domain.SceneStats, error)
}

func (m *MockSceneService) Analyze(ctx context.Context, template any, templatePath string) (*domain.SceneAnalysis, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, template, templatePath)
	}
	panic("MockSceneService.AnalyzeFunc not implemented")
}

func (m *MockSceneService) Predict(ctx context.Context, templatePath, pageID string) (*domain.SceneStats, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, templatePath, pageID)
	}
	panic("MockSceneService.PredictFunc not implemented")
}

type MockType0Service struct {
	GenerateFunc                 func(ctx context.Context, brand string, content domain.Type0Content) (*domain.Type0Result, error)
	GenerateFromTemplateTypeFunc func(ctx context.Context, templateType string, content domain.Type0Content) (*domain.Type0Result, error)
	BrandsFunc                   func() []string
}

func (m *MockType0Service) Generate(ctx context.Context, brand string, content domain.Type0Content) (*domain.Type0Result, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, brand, content)
	}
	panic("MockType0Service.GenerateFunc not implemented")
}

func (m *MockType0Service) GenerateFromTemplateType(ctx context.Context, templateType string, content domain.Type0Content) (*domain.Type0Result, error) {
	if m.GenerateFromTemplateTypeFunc != nil {
		return m.GenerateFromTemplateTypeFunc(ctx, templateType, content)
	}
	panic("MockType0Service.GenerateFromTemplateTypeFunc not implemented")
}

func (m *MockType0Service) Brands() []string {
	if m.BrandsFunc != nil {
		return m.BrandsFunc()
	}
	panic("MockType0Service.BrandsFunc not implemented")
}

type MockCache struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockCache) Get(context.Context, string) (string, error) { return "", domain.ErrCacheMiss }
func (m *MockCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (m *MockCache) Delete(context.Context, string) error { return nil }
func (m *MockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

var (
	_ service.ConversionService      = (*MockConversionService)(nil)
	_ service.DynamicTemplateService = (*MockDynamicTemplateService)(nil)
	_ service.OutputStore            = (*MockOutputStore)(nil)
	_ service.TemplateRequestService = (*MockTemplateRequestService)(nil)
	_ service.VariantService         = (*MockVariantService)(nil)
	_ service.SceneService           = (*MockSceneService)(nil)
	_ service.Type0Service           = (*MockType0Service)(nil)
	_ domain.Cache                   = (*MockCache)(nil)
)
