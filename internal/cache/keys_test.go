package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "templates",
			objectType:  "raw",
			identifier:  "voiceidealStudioTemplate.json",
			paramsKey:   nil,
			expectedKey: "courseconv:templates:raw:voiceidealStudioTemplate.json",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "templates",
			objectType:  "raw",
			identifier:  "a.json",
			paramsKey:   []string{},
			expectedKey: "courseconv:templates:raw:a.json",
		},
		{
			name:        "with one paramsKey",
			serviceName: "templates",
			objectType:  "skeleton",
			identifier:  "xl",
			paramsKey:   []string{"sompo"},
			expectedKey: "courseconv:templates:skeleton:xl:sompo",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "catalog",
			objectType:  "brand",
			identifier:  "LSXL",
			paramsKey:   []string{"samsung", "v2", "draft"},
			expectedKey: "courseconv:catalog:brand:LSXL:samsung_v2_draft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestTemplateKey(t *testing.T) {
	assert.Equal(t, "courseconv:templates:raw:templates/a.json:1700000000", TemplateKey("templates/a.json", 1700000000))
	assert.NotEqual(t, TemplateKey("a.json", 1), TemplateKey("a.json", 2))
}
