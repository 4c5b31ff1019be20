package tags

import (
	"strings"

	"course-converter/internal/domain"
)

// DefaultValue picks the value of a tag that the template uses but the AI
// output did not provide. The first matching rule wins.
func DefaultValue(name string) domain.TagValue {
	switch {
	case strings.Contains(name, "audioduration"):
		return domain.NumberTag(0)
	case strings.Contains(name, "imageurl"):
		return domain.StringTag("")
	case strings.Contains(name, "enable"),
		strings.Contains(name, "shuffle"),
		strings.Contains(name, "mandatory"):
		return domain.StringTag("false")
	case strings.Contains(name, "speech"):
		return domain.StringTag("")
	case strings.Contains(name, "title"):
		return domain.StringTag("")
	default:
		return domain.StringTag("")
	}
}

// FillDefaults adds a default for every template tag missing from mapping and
// returns how many were added. Existing entries are never changed, so calling
// it again is a no-op.
func FillDefaults(mapping domain.TagMapping, templateTags []string) int {
	added := 0
	for _, name := range templateTags {
		if mapping.Has(name) {
			continue
		}
		mapping[name] = DefaultValue(name)
		added++
	}
	return added
}
