package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"course-converter/internal/cache"
	"course-converter/internal/domain"
	"course-converter/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTemplateStore_ReadWithoutCache(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.json", `{"a":1}`)
	store := service.NewTemplateStore(nil, time.Minute)

	file, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(file.Data))
	assert.Equal(t, int64(7), file.Size)
	assert.Equal(t, path, file.Path)
}

func TestTemplateStore_ReadMissingFile(t *testing.T) {
	store := service.NewTemplateStore(nil, time.Minute)

	_, err := store.Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestTemplateStore_ReadDirectory(t *testing.T) {
	store := service.NewTemplateStore(nil, time.Minute)

	_, err := store.Stat(context.Background(), t.TempDir())
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestTemplateStore_CacheHit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.json", `{"a":1}`)
	info, err := os.Stat(path)
	require.NoError(t, err)
	key := cache.TemplateKey(path, info.ModTime().UnixNano())

	mc := new(MockCache)
	mc.On("Get", mock.Anything, key).Return(`{"cached":true}`, nil).Once()
	store := service.NewTemplateStore(mc, time.Minute)

	file, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"cached":true}`, string(file.Data))
	mc.AssertExpectations(t)
	mc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTemplateStore_CacheMissStoresContent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.json", `{"a":1}`)
	info, err := os.Stat(path)
	require.NoError(t, err)
	key := cache.TemplateKey(path, info.ModTime().UnixNano())

	mc := new(MockCache)
	mc.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	mc.On("Set", mock.Anything, key, `{"a":1}`, 5*time.Minute).Return(nil).Once()
	store := service.NewTemplateStore(mc, 5*time.Minute)

	file, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(file.Data))
	mc.AssertExpectations(t)
}

func TestTemplateStore_CacheErrorsAreNotFatal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.json", `{}`)

	mc := new(MockCache)
	mc.On("Get", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
	mc.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	store := service.NewTemplateStore(mc, time.Minute)

	file, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(file.Data))
}
