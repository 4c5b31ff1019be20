// Package template post-processes substituted templates.
package template

import (
	"course-converter/internal/config"
	"course-converter/internal/jsontree"
)

// FileKey is the object key whose empty value is replaced by fallback media.
const FileKey = "file"

// Repair walks a parsed template and sets every empty "file" member to
// fallbackURL. No other value is touched. It returns the number of repairs.
func Repair(node any, fallbackURL string) int {
	if fallbackURL == "" {
		fallbackURL = config.DefaultFallbackMediaURL
	}
	repaired := 0
	jsontree.Walk(node, func(parent *jsontree.Object, key string, value any) {
		if parent == nil || key != FileKey {
			return
		}
		if s, ok := value.(string); ok && s == "" {
			parent.Set(key, fallbackURL)
			repaired++
		}
	})
	return repaired
}
