// Package catalog holds the read-only description of the available authoring
// templates: which file serves a size and brand, where XL raw templates and
// skeletons live, and the brand variant features.
//
// A Catalog is loaded once at start-up and shared by every request.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"course-converter/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultFS embed.FS

// Size and brand selected by a template type that names neither.
const (
	DefaultSize  = "LSCapsule"
	DefaultBrand = "default"
)

// Size is one template size with the file name of each brand it supports.
type Size struct {
	Name   string            `yaml:"name" json:"name"`
	Alias  string            `yaml:"alias" json:"alias"`
	Brands map[string]string `yaml:"brands" json:"brands"`
}

// XLTemplate locates the inputs of an XL skeleton conversion.
type XLTemplate struct {
	RawTemplate string `yaml:"raw_template" json:"rawTemplate"`
	Skeleton    string `yaml:"skeleton" json:"skeleton"`
}

// Entry is a flattened size and brand pair.
type Entry struct {
	Size         string `json:"size"`
	Alias        string `json:"alias"`
	Brand        string `json:"brand"`
	FileName     string `json:"fileName"`
	TemplateType string `json:"templateType"`
}

type file struct {
	Brands   []string                  `yaml:"brands"`
	Sizes    []Size                    `yaml:"sizes"`
	XL       map[string]XLTemplate     `yaml:"xl"`
	Variants map[string]VariantFeature `yaml:"variants"`
}

// Catalog is immutable after Load.
type Catalog struct {
	brands   []string
	sizes    []Size
	bySize   map[string]int
	xl       map[string]XLTemplate
	variants map[string]VariantFeature
	type0    map[string]Type0Template
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	data, err := defaultFS.ReadFile("catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return Parse(data)
}

// Load reads a catalog file. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Sizes) == 0 {
		return nil, fmt.Errorf("catalog defines no sizes")
	}
	if _, ok := f.XL["default"]; !ok && len(f.XL) > 0 {
		return nil, fmt.Errorf("catalog xl section needs a default entry")
	}

	c := &Catalog{
		brands:   append([]string(nil), f.Brands...),
		sizes:    make([]Size, 0, len(f.Sizes)),
		bySize:   make(map[string]int, len(f.Sizes)*2),
		xl:       make(map[string]XLTemplate, len(f.XL)),
		variants: make(map[string]VariantFeature, len(f.Variants)),
	}
	for _, s := range f.Sizes {
		if s.Name == "" {
			return nil, fmt.Errorf("catalog size without a name")
		}
		brands := make(map[string]string, len(s.Brands))
		for b, name := range s.Brands {
			brands[strings.ToLower(b)] = name
		}
		s.Brands = brands
		c.bySize[strings.ToLower(s.Name)] = len(c.sizes)
		if s.Alias != "" {
			c.bySize[strings.ToLower(s.Alias)] = len(c.sizes)
		}
		c.sizes = append(c.sizes, s)
	}
	if len(c.brands) == 0 {
		seen := map[string]struct{}{}
		for _, s := range c.sizes {
			for b := range s.Brands {
				if _, ok := seen[b]; !ok {
					seen[b] = struct{}{}
					c.brands = append(c.brands, b)
				}
			}
		}
		sort.Strings(c.brands)
	}
	for k, v := range f.XL {
		c.xl[strings.ToUpper(k)] = v
	}
	for k, v := range f.Variants {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("variant %s: %w", k, err)
		}
		c.variants[strings.ToLower(k)] = v
	}
	t0, err := loadType0()
	if err != nil {
		return nil, err
	}
	c.type0 = t0
	return c, nil
}

// ParseTemplateType splits "Size-Brand" into its size and lower-cased brand.
// A value without a dash, or with more than one, selects the default capsule.
func ParseTemplateType(templateType string) (size, brand string) {
	parts := strings.Split(templateType, "-")
	if len(parts) != 2 {
		return DefaultSize, DefaultBrand
	}
	return parts[0], strings.ToLower(parts[1])
}

// IsXL reports whether a template type selects the XL skeleton path.
func IsXL(templateType string) bool {
	return strings.HasPrefix(templateType, "XL")
}

// Size resolves a size by name or alias, ignoring case.
func (c *Catalog) Size(name string) (Size, bool) {
	i, ok := c.bySize[strings.ToLower(name)]
	if !ok {
		return Size{}, false
	}
	return c.sizes[i], true
}

// Sizes returns the size names in catalog order.
func (c *Catalog) Sizes() []string {
	out := make([]string, len(c.sizes))
	for i, s := range c.sizes {
		out[i] = s.Name
	}
	return out
}

// Aliases returns the short size names in catalog order.
func (c *Catalog) Aliases() []string {
	out := make([]string, 0, len(c.sizes))
	for _, s := range c.sizes {
		if s.Alias != "" {
			out = append(out, s.Alias)
		}
	}
	return out
}

func (c *Catalog) Brands() []string {
	return append([]string(nil), c.brands...)
}

func (c *Catalog) KnownBrand(brand string) bool {
	b := strings.ToLower(brand)
	for _, known := range c.brands {
		if known == b {
			return true
		}
	}
	return false
}

// TemplateFile returns the size directory and file name serving size and
// brand. Unknown values are invalid input; a known pair without a file is
// not found.
func (c *Catalog) TemplateFile(size, brand string) (dir, fileName string, err error) {
	s, ok := c.Size(size)
	if !ok {
		return "", "", domain.NewInvalidInputError(fmt.Sprintf("Invalid size: %s. Valid sizes: %s", size, strings.Join(c.Aliases(), ", ")))
	}
	if !c.KnownBrand(brand) {
		return "", "", domain.NewInvalidInputError(fmt.Sprintf("Invalid brand: %s. Valid brands: %s", brand, strings.Join(c.brands, ", ")))
	}
	name, ok := s.Brands[strings.ToLower(brand)]
	if !ok {
		return "", "", domain.NewNotFoundError(fmt.Sprintf("Template not found for %s-%s", size, brand))
	}
	return s.Name, name, nil
}

// ReferenceFile is TemplateFile with a fallback to the size's default brand,
// as used by the dynamic template path.
func (c *Catalog) ReferenceFile(size, brand string) (dir, fileName string, err error) {
	s, ok := c.Size(size)
	if !ok {
		return "", "", domain.NewNotFoundError(fmt.Sprintf("Reference template not found for size: %s", size))
	}
	if name, ok := s.Brands[strings.ToLower(brand)]; ok {
		return s.Name, name, nil
	}
	if name, ok := s.Brands[DefaultBrand]; ok {
		return s.Name, name, nil
	}
	return "", "", domain.NewNotFoundError(fmt.Sprintf("Reference template not found for %s-%s", size, brand))
}

// Entries lists every size and brand pair in catalog order.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for _, s := range c.sizes {
		for _, b := range c.brands {
			name, ok := s.Brands[b]
			if !ok {
				continue
			}
			alias := s.Alias
			if alias == "" {
				alias = s.Name
			}
			out = append(out, Entry{
				Size:         s.Name,
				Alias:        alias,
				Brand:        b,
				FileName:     name,
				TemplateType: alias + "-" + b,
			})
		}
	}
	return out
}

// XL returns the raw template and skeleton of an XL template type. Types
// without their own entry use the default one.
func (c *Catalog) XL(templateType string) (XLTemplate, bool) {
	if t, ok := c.xl[strings.ToUpper(templateType)]; ok {
		return t, true
	}
	t, ok := c.xl["DEFAULT"]
	return t, ok
}

// Variant returns the capsule variant named variant, ignoring case.
func (c *Catalog) Variant(variant string) (VariantFeature, bool) {
	v, ok := c.variants[strings.ToLower(variant)]
	return v, ok
}

// Variants returns the variant names in sorted order.
func (c *Catalog) Variants() []string {
	out := make([]string, 0, len(c.variants))
	for k := range c.variants {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
