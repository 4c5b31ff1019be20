package extractor

import (
	"strings"

	"course-converter/internal/domain"
)

// RenderContent flattens section content into display text.
//
// Slots are concatenated in authoring order: paragraph, paragraph1 with
// paragraph2 and paragraph3 (only when paragraph1 is set), list, then each
// complete subtitle/subtext pair. The result is trimmed. Flat string content
// is returned as is.
func RenderContent(content domain.SectionContent) string {
	if !content.IsStructured() {
		return content.Text
	}
	f := content.Fields

	var b strings.Builder
	b.WriteString(f.Paragraph)

	if f.Paragraph1 != "" {
		b.WriteString(f.Paragraph1)
		if f.Paragraph2 != "" {
			b.WriteString("\n\n" + f.Paragraph2)
		}
		if f.Paragraph3 != "" {
			b.WriteString("\n\n" + f.Paragraph3)
		}
	}

	if f.List != "" {
		b.WriteString("\n" + f.List)
	}

	pairs := [][2]string{
		{f.Subtitle1, f.Subtext1},
		{f.Subtitle2, f.Subtext2},
		{f.Subtitle3, f.Subtext3},
	}
	for _, p := range pairs {
		if p[0] != "" && p[1] != "" {
			b.WriteString("\n\n" + p[0] + "\n" + p[1])
		}
	}

	return strings.TrimSpace(b.String())
}

// FirstParagraph is the short form used where a box only carries a lead text.
func FirstParagraph(content domain.SectionContent) string {
	if !content.IsStructured() {
		return content.Text
	}
	if content.Fields.Paragraph != "" {
		return content.Fields.Paragraph
	}
	return content.Fields.Paragraph1
}
