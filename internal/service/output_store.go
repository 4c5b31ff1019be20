package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/util"
)

// OutputDownloadPrefix is the URL path under which converted files are served.
const OutputDownloadPrefix = "/outputs/converted/"

// OutputStore persists converted templates.
type OutputStore interface {
	Save(ctx context.Context, template any, prefix string) (path string, size int64, err error)
	List(ctx context.Context) ([]domain.OutputFile, error)
	Dir() string
}

type fileOutputStore struct {
	dir string
}

func NewOutputStore(dir string) OutputStore {
	return &fileOutputStore{dir: dir}
}

func (s *fileOutputStore) Dir() string { return s.dir }

// Save writes template as indented JSON under a ULID file name.
func (s *fileOutputStore) Save(_ context.Context, template any, prefix string) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, domain.NewInternalError("failed to create output directory", err)
	}
	data, err := jsontree.MarshalIndent(template, "  ")
	if err != nil {
		return "", 0, domain.NewInternalError("failed to encode converted template", err)
	}
	path := filepath.Join(s.dir, util.OutputFileName(prefix))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, domain.NewInternalError("failed to write converted template", err)
	}
	return path, int64(len(data)), nil
}

// List returns the persisted outputs, newest first. A missing directory
// yields an empty list.
func (s *fileOutputStore) List(_ context.Context) ([]domain.OutputFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.OutputFile{}, nil
		}
		return nil, domain.NewInternalError("Failed to list outputs", err)
	}

	out := make([]domain.OutputFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.OutputFile{
			FileName:    e.Name(),
			Size:        info.Size(),
			Created:     info.ModTime(),
			DownloadURL: OutputDownloadPrefix + e.Name(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].FileName > out[j].FileName
		}
		return out[i].Created.After(out[j].Created)
	})
	return out, nil
}
