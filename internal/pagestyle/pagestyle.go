// Package pagestyle maps the numeric page style of an AI output section to
// the tag namespace used by the authoring templates.
package pagestyle

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"course-converter/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Code is the numeric page style carried by a section.
type Code int

// Kind classifies a page style. Every Code belongs to exactly one Kind.
type Kind int

const (
	KindContent Kind = iota
	KindVideo
	KindQuiz
	KindClosing
)

func (k Kind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindVideo:
		return "video"
	case KindQuiz:
		return "quiz"
	case KindClosing:
		return "closing"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Kind reports which section class the code selects.
// 11 is the video page, 12-14 are quiz pages, 100 and above close the course.
func (c Code) Kind() Kind {
	switch {
	case c >= 100:
		return KindClosing
	case c == 11:
		return KindVideo
	case c >= 12 && c <= 14:
		return KindQuiz
	default:
		return KindContent
	}
}

// Table is an immutable page style to namespace lookup.
type Table struct {
	entries  map[Code]string
	fallback string
}

// NewTable copies entries into a new table. A non-empty fallback is returned
// for unknown codes instead of a synthesized namespace.
func NewTable(entries map[Code]string, fallback string) *Table {
	t := &Table{entries: make(map[Code]string, len(entries)), fallback: fallback}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// DefaultTable is the namespace table of the voice template family.
func DefaultTable() *Table {
	return NewTable(map[Code]string{
		26:  "type1_1",
		27:  "type2_2",
		15:  "type9_9",
		21:  "type8_8",
		4:   "type4_4",
		28:  "type9_9",
		29:  "type6_6",
		30:  "type5_5",
		10:  "type10_10",
		11:  "type11_11",
		12:  "type12_12",
		13:  "type13_13",
		14:  "type14_14",
		100: "type100",
		101: "type101",
	}, "")
}

// DynamicTable is the dense table used when injecting into reference
// templates by brand and size. Unknown codes land on type1_1.
func DynamicTable() *Table {
	entries := make(map[Code]string, 30)
	for i := 1; i <= 30; i++ {
		group := (i-1)/3 + 1
		slot := (i-1)%3 + 1
		entries[Code(i)] = fmt.Sprintf("type%d_%d", group, slot)
	}
	return NewTable(entries, "type1_1")
}

type tableFile struct {
	Fallback   string         `yaml:"fallback"`
	PageStyles map[int]string `yaml:"pagestyles"`
}

// LoadTable reads a YAML table so the mapping can change without a rebuild.
//
//	fallback: ""
//	pagestyles:
//	  26: type1_1
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page style table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse page style table %s: %w", path, err)
	}
	if len(f.PageStyles) == 0 {
		return nil, fmt.Errorf("page style table %s has no entries", path)
	}
	entries := make(map[Code]string, len(f.PageStyles))
	for k, v := range f.PageStyles {
		entries[Code(k)] = v
	}
	return NewTable(entries, f.Fallback), nil
}

// Lookup returns the namespace for c and whether the table defines it.
func (t *Table) Lookup(c Code) (string, bool) {
	ns, ok := t.entries[c]
	return ns, ok
}

// Codes returns the defined codes in ascending order.
func (t *Table) Codes() []Code {
	codes := make([]Code, 0, len(t.entries))
	for c := range t.entries {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Mapper resolves page styles against a table. It is safe for concurrent use.
type Mapper struct {
	table *Table
}

func NewMapper(table *Table) *Mapper {
	if table == nil {
		table = DefaultTable()
	}
	return &Mapper{table: table}
}

// UnknownNamespace is the namespace synthesized for a code missing from the table.
func UnknownNamespace(c Code) string {
	return "type_unknown_" + strconv.Itoa(int(c))
}

// ToType returns the tag namespace of c. It never fails: unknown codes map to
// the table fallback, or to UnknownNamespace with a warning.
func (m *Mapper) ToType(c Code) string {
	if ns, ok := m.table.Lookup(c); ok {
		return ns
	}
	if m.table.fallback != "" {
		logger.Get().Debug("Page style not in table, using fallback namespace",
			zap.Int("page_style", int(c)),
			zap.String("namespace", m.table.fallback),
		)
		return m.table.fallback
	}
	ns := UnknownNamespace(c)
	logger.Get().Warn("Unknown page style",
		zap.Int("page_style", int(c)),
		zap.String("namespace", ns),
	)
	return ns
}

func (m *Mapper) IsSupported(c Code) bool {
	_, ok := m.table.Lookup(c)
	return ok
}

// All returns a copy of the underlying table.
func (m *Mapper) All() map[Code]string {
	out := make(map[Code]string, len(m.table.entries))
	for k, v := range m.table.entries {
		out[k] = v
	}
	return out
}
