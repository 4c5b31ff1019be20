package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"course-converter/internal/domain"
	"course-converter/internal/jsontree"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.Cache = (*MockCache)(nil)

// writeFile creates dir/name with content, making parent directories as needed.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustObject(t *testing.T, s string) *jsontree.Object {
	t.Helper()
	obj, err := jsontree.ParseObject([]byte(s))
	require.NoError(t, err)
	return obj
}
