package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"course-converter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestParseTemplateType(t *testing.T) {
	tests := []struct {
		in    string
		size  string
		brand string
	}{
		{in: "XL-Sompo", size: "XL", brand: "sompo"},
		{in: "LSCapsule-Blue", size: "LSCapsule", brand: "blue"},
		{in: "Capsule", size: "LSCapsule", brand: "default"},
		{in: "", size: "LSCapsule", brand: "default"},
		{in: "a-b-c", size: "LSCapsule", brand: "default"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			size, brand := ParseTemplateType(tt.in)
			assert.Equal(t, tt.size, size)
			assert.Equal(t, tt.brand, brand)
		})
	}
}

func TestCatalog_TemplateFile(t *testing.T) {
	c := mustDefault(t)

	dir, name, err := c.TemplateFile("Capsule", "silent")
	require.NoError(t, err)
	assert.Equal(t, "LSCapsule", dir)
	assert.Equal(t, "silentIIdealStudioTemplate.json", name)

	dir, name, err = c.TemplateFile("XL", "SOMPO")
	require.NoError(t, err)
	assert.Equal(t, "LSXL", dir)
	assert.Equal(t, "voiceidealStudioTemplate_sompo.json", name)

	_, _, err = c.TemplateFile("Huge", "blue")
	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.CodeInvalidInput, de.Code)

	_, _, err = c.TemplateFile("XL", "purple")
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.CodeInvalidInput, de.Code)

	_, _, err = c.TemplateFile("XL", "blue")
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.CodeNotFound, de.Code)
}

func TestCatalog_ReferenceFileFallsBackToDefaultBrand(t *testing.T) {
	c := mustDefault(t)

	dir, name, err := c.ReferenceFile("LSMini", "champs")
	require.NoError(t, err)
	assert.Equal(t, "LSMini", dir)
	assert.Equal(t, "voiceidealStudioTemplate.json", name)

	_, _, err = c.ReferenceFile("Nope", "default")
	assert.Error(t, err)
}

func TestCatalog_Entries(t *testing.T) {
	c := mustDefault(t)
	entries := c.Entries()

	// nine capsule brands plus three for each of the five other sizes
	assert.Len(t, entries, 9+5*3)
	assert.Equal(t, "Capsule-default", entries[0].TemplateType)
	assert.Equal(t, []string{"LSCapsule", "LSXL", "LSMaxi", "LSMicro", "LSMidi", "LSMini"}, c.Sizes())
}

func TestCatalog_XL(t *testing.T) {
	c := mustDefault(t)

	sompo, ok := c.XL("XL-Sompo")
	require.True(t, ok)
	assert.Contains(t, sompo.Skeleton, "9_XL_SOMPO_FinalOutput.json")

	blue, ok := c.XL("XL-Blue")
	require.True(t, ok)
	assert.Contains(t, blue.Skeleton, "5_XL_Blue_FinalOutput.json")
	assert.Contains(t, blue.RawTemplate, "voiceidealStudioTemplate.json")

	assert.True(t, IsXL("XL-SOMPO"))
	assert.False(t, IsXL("Capsule-XL"))
}

func TestCatalog_Variants(t *testing.T) {
	c := mustDefault(t)

	v, ok := c.Variant("Sompo")
	require.True(t, ok)
	assert.Equal(t, BackgroundVideo, v.Background.Style)
	assert.Equal(t, WaitForVideo, v.Mandatory.Type)
	assert.Nil(t, mustVariant(t, c, "default").Logo.Position)

	_, ok = c.Variant("unknown")
	assert.False(t, ok)
	assert.Contains(t, c.Variants(), "champs")
}

func mustVariant(t *testing.T, c *Catalog, name string) VariantFeature {
	t.Helper()
	v, ok := c.Variant(name)
	require.True(t, ok)
	return v
}

func TestCatalog_Type0(t *testing.T) {
	c := mustDefault(t)

	assert.Equal(t, []string{"BLUE", "SOMPO"}, c.Type0Brands())

	green, ok := c.Type0("Green")
	require.True(t, ok)
	assert.Equal(t, "BLUE", green.Brand)

	sompo, ok := c.Type0("sompo")
	require.True(t, ok)
	assert.Equal(t, 2, sompo.SceneIndex)
	require.NotNil(t, sompo.ImageBox)

	// copies are independent
	sompo.Page.Set("viewName", "changed")
	again, _ := c.Type0("sompo")
	name, _ := again.Page.String("viewName")
	assert.Equal(t, "#{[type0:title]}#", name)

	_, ok = c.Type0("samsung")
	assert.False(t, ok, "samsung has no intro theme")

	assert.Equal(t, "samsung", ExtractBrand("LSXL-Samsung"))
	assert.Equal(t, "blue", ExtractBrand("Capsule"))
}

func TestLoad_OverrideFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
sizes:
  - name: LSTiny
    alias: Tiny
    brands:
      Default: tiny.json
`), 0o644))

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, c.Brands())
	_, name, err := c.TemplateFile("tiny", "default")
	require.NoError(t, err)
	assert.Equal(t, "tiny.json", name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsBadVariant(t *testing.T) {
	_, err := Parse([]byte(`
sizes: [{name: LSX, brands: {default: x.json}}]
variants:
  odd: {background: {style: plaid}, mandatory: {type: waitForSound}}
`))
	assert.Error(t, err)
}
