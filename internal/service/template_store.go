package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"course-converter/internal/cache"
	"course-converter/internal/domain"
	"course-converter/internal/logger"

	"go.uber.org/zap"
)

// LoadedFile is a file read through a TemplateStore.
type LoadedFile struct {
	Path    string
	Data    []byte
	Size    int64
	ModTime time.Time
}

// TemplateStore reads template, skeleton and AI output files.
type TemplateStore interface {
	// Read returns a NOT_FOUND domain error when path does not exist.
	Read(ctx context.Context, path string) (*LoadedFile, error)
	Stat(ctx context.Context, path string) (os.FileInfo, error)
}

// fileTemplateStore reads from the local file system. When a cache is
// configured file contents are shared through it, keyed by path and
// modification time.
type fileTemplateStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewTemplateStore creates a TemplateStore. A nil cache disables caching.
func NewTemplateStore(c domain.Cache, ttl time.Duration) TemplateStore {
	if c == nil {
		logger.Get().Debug("TemplateStore initialized without cache")
	}
	return &fileTemplateStore{cache: c, ttl: ttl}
}

func (s *fileTemplateStore) Stat(_ context.Context, path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("File not found: %s", path))
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if info.IsDir() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("%s is a directory", path))
	}
	return info, nil
}

func (s *fileTemplateStore) Read(ctx context.Context, path string) (*LoadedFile, error) {
	info, err := s.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	out := &LoadedFile{Path: path, Size: info.Size(), ModTime: info.ModTime()}

	key := cache.TemplateKey(path, info.ModTime().UnixNano())
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			logger.Get().Debug("Template cache hit", zap.String("key", key))
			out.Data = []byte(cached)
			return out, nil
		case errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Debug("Template cache miss", zap.String("key", key))
		default:
			logger.Get().Warn("Failed to read template from cache", zap.Error(err), zap.String("key", key))
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read %s", path), err)
	}
	out.Data = data

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			logger.Get().Warn("Failed to cache template", zap.Error(err), zap.String("key", key))
		}
	}
	return out, nil
}
