package tags

import (
	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
)

// Replacer substitutes tag values for placeholders. Tokens whose name is not
// in the mapping are left untouched.
type Replacer struct{}

func NewReplacer() *Replacer {
	return &Replacer{}
}

func (r *Replacer) replaceIn(s string, mapping domain.TagMapping, count *int) string {
	if !HasPlaceholders(s) {
		return s
	}
	return tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		name := token[3 : len(token)-3]
		v, ok := mapping[name]
		if !ok {
			return token
		}
		*count++
		return v.String()
	})
}

// ReplaceText substitutes placeholders in raw template text and returns the
// result with the number of replaced occurrences. Values are inserted
// without escaping, so a value containing a quote can break the JSON.
func (r *Replacer) ReplaceText(text string, mapping domain.TagMapping) (string, int) {
	count := 0
	out := r.replaceIn(text, mapping, &count)
	return out, count
}

// ReplaceTree substitutes placeholders inside the string values and object
// keys of a parsed template. The structure of the document cannot change.
func (r *Replacer) ReplaceTree(node any, mapping domain.TagMapping) (any, int) {
	count := 0
	out := jsontree.MapStrings(node, func(s string) string {
		return r.replaceIn(s, mapping, &count)
	})
	return out, count
}

// StripUnresolved removes every remaining placeholder from text and returns
// the distinct names removed.
func StripUnresolved(text string) (string, []string) {
	names := Names(text)
	if len(names) == 0 {
		return text, nil
	}
	return tokenPattern.ReplaceAllString(text, ""), names
}

// StripUnresolvedTree removes every remaining placeholder from a parsed template.
func StripUnresolvedTree(node any) (any, []string) {
	seen := make(map[string]struct{})
	var names []string
	out := jsontree.MapStrings(node, func(s string) string {
		for _, n := range Scan(s) {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				names = append(names, n)
			}
		}
		return tokenPattern.ReplaceAllString(s, "")
	})
	return out, names
}

// UnresolvedTree lists the distinct placeholder names left in a parsed template.
func UnresolvedTree(node any) []string {
	seen := make(map[string]struct{})
	var names []string
	jsontree.MapStrings(node, func(s string) string {
		for _, n := range Scan(s) {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				names = append(names, n)
			}
		}
		return s
	})
	return names
}
