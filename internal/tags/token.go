// Package tags builds the tag table of a conversion and substitutes it into
// templates.
package tags

import "regexp"

// tokenPattern matches a placeholder such as #{[type1_1:title]}# and captures
// the tag name.
var tokenPattern = regexp.MustCompile(`#\{\[([^\]]+)\]\}#`)

// Placeholder returns the literal token for a tag name.
func Placeholder(name string) string {
	return "#{[" + name + "]}#"
}

// Scan returns the tag name of every placeholder occurrence in text,
// duplicates included, in order of appearance.
func Scan(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Names returns the distinct tag names in text in order of first appearance.
func Names(text string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, n := range Scan(text) {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return names
}

// HasPlaceholders reports whether text contains at least one token.
func HasPlaceholders(text string) bool {
	return tokenPattern.MatchString(text)
}
