package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"course-converter/internal/jsontree"
)

//go:embed type0/*.json
var type0FS embed.FS

// Type0Template is an intro scene: one page, a title box and an optional
// image box, with placeholders for the title, image and mandatory flag.
type Type0Template struct {
	Key        string
	Brand      string
	SceneIndex int
	Page       *jsontree.Object
	TextBox    *jsontree.Object
	ImageBox   *jsontree.Object
}

// Clone returns a copy whose trees can be modified freely.
func (t Type0Template) Clone() Type0Template {
	out := t
	out.Page = jsontree.Clone(t.Page).(*jsontree.Object)
	out.TextBox = jsontree.Clone(t.TextBox).(*jsontree.Object)
	if t.ImageBox != nil {
		out.ImageBox = jsontree.Clone(t.ImageBox).(*jsontree.Object)
	}
	return out
}

// type0Aliases maps a conversion brand to the intro theme that renders it.
// Brands without a theme of their own borrow the blue one.
var type0Aliases = map[string]string{
	"blue":    "blue",
	"sompo":   "sompo",
	"samsung": "samsung",
	"creatio": "creatio",
	"champs":  "champs",
	"mavi":    "blue",
	"green":   "blue",
	"black":   "blue",
	"default": "blue",
}

type type0File struct {
	Brand      string          `json:"brand"`
	SceneIndex int             `json:"sceneIndex"`
	Page       json.RawMessage `json:"page"`
	TextBox    json.RawMessage `json:"textBox"`
	ImageBox   json.RawMessage `json:"imageBox"`
}

func loadType0() (map[string]Type0Template, error) {
	entries, err := type0FS.ReadDir("type0")
	if err != nil {
		return nil, fmt.Errorf("failed to list intro templates: %w", err)
	}
	out := make(map[string]Type0Template, len(entries))
	for _, e := range entries {
		data, err := type0FS.ReadFile(path.Join("type0", e.Name()))
		if err != nil {
			return nil, err
		}
		var f type0File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("intro template %s: %w", e.Name(), err)
		}
		t := Type0Template{
			Key:        strings.TrimSuffix(e.Name(), path.Ext(e.Name())),
			Brand:      f.Brand,
			SceneIndex: f.SceneIndex,
		}
		if t.Page, err = jsontree.ParseObject(f.Page); err != nil {
			return nil, fmt.Errorf("intro template %s page: %w", e.Name(), err)
		}
		if t.TextBox, err = jsontree.ParseObject(f.TextBox); err != nil {
			return nil, fmt.Errorf("intro template %s text box: %w", e.Name(), err)
		}
		if len(f.ImageBox) > 0 && string(f.ImageBox) != "null" {
			if t.ImageBox, err = jsontree.ParseObject(f.ImageBox); err != nil {
				return nil, fmt.Errorf("intro template %s image box: %w", e.Name(), err)
			}
		}
		out[t.Key] = t
	}
	return out, nil
}

// ExtractBrand returns the lower-cased last dash separated part of a
// template type, or "blue" when there is none.
//
//	"Capsule-Blue" -> "blue", "LSXL-Samsung" -> "samsung"
func ExtractBrand(templateType string) string {
	parts := strings.Split(templateType, "-")
	if len(parts) < 2 {
		return "blue"
	}
	return strings.ToLower(parts[len(parts)-1])
}

// Type0 returns a copy of the intro template serving brand.
func (c *Catalog) Type0(brand string) (Type0Template, bool) {
	b := strings.ToLower(strings.Join(strings.Fields(brand), "-"))
	key, ok := type0Aliases[b]
	if !ok {
		key = b
	}
	t, ok := c.type0[key]
	if !ok {
		return Type0Template{}, false
	}
	return t.Clone(), true
}

// Type0Brands lists the brands of the loaded intro templates.
func (c *Catalog) Type0Brands() []string {
	out := make([]string, 0, len(c.type0))
	for _, t := range c.type0 {
		out = append(out, t.Brand)
	}
	sort.Strings(out)
	return out
}
