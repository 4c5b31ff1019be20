package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"course-converter/internal/catalog"
	"course-converter/internal/config"
	"course-converter/internal/domain"
	"course-converter/internal/logger"
	"course-converter/internal/util"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	listConcurrency = 8
	isoMillis       = "2006-01-02T15:04:05.000Z"
)

// TemplateRequestService serves authoring templates by size and brand and
// lists what is on disk.
type TemplateRequestService interface {
	// Get returns the template text without substituting anything.
	Get(ctx context.Context, size, brand string) (*domain.RawTemplate, error)
	List(ctx context.Context) ([]domain.TemplateListing, error)
	ListTemplateFiles(ctx context.Context) ([]domain.TemplateFileGroup, error)
}

type templateRequestService struct {
	store   TemplateStore
	catalog *catalog.Catalog
	cfg     *config.Config
}

func NewTemplateRequestService(cfg *config.Config, cat *catalog.Catalog, store TemplateStore) TemplateRequestService {
	return &templateRequestService{store: store, catalog: cat, cfg: cfg}
}

func (s *templateRequestService) Get(ctx context.Context, size, brand string) (*domain.RawTemplate, error) {
	dir, fileName, err := s.catalog.TemplateFile(size, brand)
	if err != nil {
		return nil, err
	}
	path := s.cfg.TemplatePath(dir, fileName)
	file, err := s.store.Read(ctx, path)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFoundError("Template file not found: " + path)
		}
		return nil, err
	}

	meta := domain.TemplateMetadata{
		Size:         size,
		Brand:        brand,
		FileName:     fileName,
		FileSize:     util.FormatMB(file.Size),
		BoxesCount:   countRawBoxes(file.Data),
		LastModified: file.ModTime.UTC().Format(isoMillis),
	}
	logger.Get().Info("Template loaded",
		zap.String("size", size),
		zap.String("brand", brand),
		zap.String("file_size", meta.FileSize),
	)
	return &domain.RawTemplate{Template: string(file.Data), Metadata: meta}, nil
}

// countRawBoxes counts present.boxesById without building a tree, so a
// template whose placeholders break strict parsing still gets a count.
func countRawBoxes(data []byte) int {
	n := 0
	err := jsonparser.ObjectEach(data, func(_ []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		n++
		return nil
	}, "present", "boxesById")
	if err != nil {
		return 0
	}
	return n
}

// List reports every catalog entry with whether its file exists.
func (s *templateRequestService) List(ctx context.Context) ([]domain.TemplateListing, error) {
	entries := s.catalog.Entries()
	out := make([]domain.TemplateListing, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			path := s.cfg.TemplatePath(e.Size, e.FileName)
			_, err := s.store.Stat(gctx, path)
			out[i] = domain.TemplateListing{
				Size:         e.Alias,
				Brand:        e.Brand,
				FileName:     e.FileName,
				Exists:       err == nil,
				TemplateType: e.TemplateType,
				FullPath:     path,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to list templates", err)
	}
	return out, nil
}

// ListTemplateFiles groups the scene template directories and the XL raw
// templates. Missing directories are skipped.
func (s *templateRequestService) ListTemplateFiles(_ context.Context) ([]domain.TemplateFileGroup, error) {
	groups := []domain.TemplateFileGroup{}

	sceneRoot := s.cfg.TemplatePath(s.cfg.Templates.SceneDir)
	dirs, err := readDirIfExists(sceneRoot)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list templates", err)
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		files, err := jsonFiles(filepath.Join(sceneRoot, d.Name()), d.Name())
		if err != nil {
			return nil, domain.NewInternalError("Failed to list templates", err)
		}
		if len(files) > 0 {
			groups = append(groups, domain.TemplateFileGroup{TemplateType: d.Name(), Files: files})
		}
	}

	xlFiles, err := jsonFiles(s.cfg.TemplatePath(s.cfg.Templates.XLRawDir), "XL")
	if err != nil {
		return nil, domain.NewInternalError("Failed to list templates", err)
	}
	if len(xlFiles) > 0 {
		groups = append(groups, domain.TemplateFileGroup{TemplateType: "XL", Files: xlFiles})
	}
	return groups, nil
}

func readDirIfExists(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}

func jsonFiles(dir, templateType string) ([]domain.TemplateFile, error) {
	entries, err := readDirIfExists(dir)
	if err != nil {
		return nil, err
	}
	var files []domain.TemplateFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, domain.TemplateFile{
			Name:         e.Name(),
			Path:         filepath.Join(dir, e.Name()),
			TemplateType: templateType,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
