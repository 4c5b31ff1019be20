package extractor

import (
	"testing"

	"course-converter/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRenderContent(t *testing.T) {
	tests := []struct {
		name     string
		content  domain.SectionContent
		expected string
	}{
		{
			name:     "flat string is verbatim",
			content:  domain.TextContent("  <p>keep spaces</p> "),
			expected: "  <p>keep spaces</p> ",
		},
		{
			name:     "empty",
			content:  domain.SectionContent{},
			expected: "",
		},
		{
			name:     "paragraph only",
			content:  domain.StructuredContent(domain.ContentFields{Paragraph: " intro "}),
			expected: "intro",
		},
		{
			name: "numbered paragraphs",
			content: domain.StructuredContent(domain.ContentFields{
				Paragraph1: "one", Paragraph2: "two", Paragraph3: "three",
			}),
			expected: "one\n\ntwo\n\nthree",
		},
		{
			name: "paragraph2 ignored without paragraph1",
			content: domain.StructuredContent(domain.ContentFields{
				Paragraph: "p", Paragraph2: "two",
			}),
			expected: "p",
		},
		{
			name: "list and complete pairs",
			content: domain.StructuredContent(domain.ContentFields{
				Paragraph: "p",
				List:      "- a\n- b",
				Subtitle1: "S1", Subtext1: "T1",
				Subtitle2: "S2",
				Subtitle3: "S3", Subtext3: "T3",
			}),
			expected: "p\n- a\n- b\n\nS1\nT1\n\nS3\nT3",
		},
		{
			name: "paragraph and paragraph1 are joined directly",
			content: domain.StructuredContent(domain.ContentFields{
				Paragraph: "a", Paragraph1: "b",
			}),
			expected: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderContent(tt.content))
		})
	}
}

func TestFirstParagraph(t *testing.T) {
	assert.Equal(t, "x", FirstParagraph(domain.TextContent("x")))
	assert.Equal(t, "p", FirstParagraph(domain.StructuredContent(domain.ContentFields{Paragraph: "p", Paragraph1: "q"})))
	assert.Equal(t, "q", FirstParagraph(domain.StructuredContent(domain.ContentFields{Paragraph1: "q"})))
}

func TestFormatQuiz(t *testing.T) {
	sel := FormatQuiz(domain.Quiz{
		Type:           domain.QuizMultiSelect,
		Question:       "Pick",
		Options:        []string{"a", "b"},
		CorrectAnswers: []string{"b"},
	})
	assert.Equal(t, []string{"a", "b"}, sel.Options)
	assert.Equal(t, []string{"b"}, sel.CorrectAnswers)
	assert.Empty(t, sel.Statements)

	tf := FormatQuiz(domain.Quiz{
		Type:     domain.QuizTrueFalse,
		Question: "Judge",
		Options:  []string{"ignored"},
		Statements: []domain.Statement{
			{Statement: "sky is blue", Answer: domain.AnswerTrue},
			{Statement: "fire is cold", Answer: domain.AnswerFalse},
		},
	})
	assert.Nil(t, tf.Options)
	assert.Equal(t, []StatementView{{"sky is blue", true}, {"fire is cold", false}}, tf.Statements)
}
