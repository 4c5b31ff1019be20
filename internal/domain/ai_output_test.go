package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionContent_UnmarshalJSON(t *testing.T) {
	t.Run("flat string", func(t *testing.T) {
		var s Section
		require.NoError(t, json.Unmarshal([]byte(`{"PageStyle":100,"Content":"<p>bye</p>"}`), &s))
		assert.False(t, s.Content.IsStructured())
		assert.Equal(t, "<p>bye</p>", s.Content.Text)
	})

	t.Run("structured object", func(t *testing.T) {
		var s Section
		require.NoError(t, json.Unmarshal([]byte(`{"PageStyle":26,"Content":{"paragraph":"p","subtitle1":"s1","subtext1":"t1"}}`), &s))
		require.True(t, s.Content.IsStructured())
		assert.Equal(t, "p", s.Content.Fields.Paragraph)
		assert.Equal(t, "s1", s.Content.Fields.Subtitle1)
		assert.Equal(t, "t1", s.Content.Fields.Subtext1)
	})

	t.Run("null", func(t *testing.T) {
		var s Section
		require.NoError(t, json.Unmarshal([]byte(`{"Content":null}`), &s))
		assert.True(t, s.Content.IsEmpty())
	})

	t.Run("number is rejected", func(t *testing.T) {
		var s Section
		assert.Error(t, json.Unmarshal([]byte(`{"Content":12}`), &s))
	})
}

func TestSectionContent_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(TextContent("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(b))

	b, err = json.Marshal(StructuredContent(ContentFields{Paragraph: "p"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"paragraph":"p"}`, string(b))

	b, err = json.Marshal(SectionContent{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestStatementAnswer_UnmarshalJSON(t *testing.T) {
	var st []Statement
	require.NoError(t, json.Unmarshal([]byte(`[
		{"Statement":"a","Answer":"True"},
		{"Statement":"b","Answer":false},
		{"Statement":"c","Answer":"false"},
		{"Statement":"d","Answer":true}
	]`), &st))

	require.Len(t, st, 4)
	assert.True(t, st[0].Answer.Bool())
	assert.Equal(t, AnswerFalse, st[1].Answer)
	assert.Equal(t, AnswerFalse, st[2].Answer)
	assert.Equal(t, AnswerTrue, st[3].Answer)
}

func TestAIOutput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing []string
	}{
		{
			name:  "complete",
			input: `{"CourseInfo":{"Title":"T"},"Sections":[],"GeneralQuiz":[]}`,
		},
		{
			name:    "missing sections",
			input:   `{"CourseInfo":{"Title":"T"},"GeneralQuiz":[]}`,
			missing: []string{"Sections"},
		},
		{
			name:    "null quiz",
			input:   `{"CourseInfo":{"Title":"T"},"Sections":[],"GeneralQuiz":null}`,
			missing: []string{"GeneralQuiz"},
		},
		{
			name:    "empty object",
			input:   `{}`,
			missing: []string{"CourseInfo", "Sections", "GeneralQuiz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseAIOutput([]byte(tt.input))
			require.NoError(t, err)

			err = out.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var domainErr *DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, CodeValidation, domainErr.Code)
			assert.Equal(t, tt.missing, domainErr.Context["missing"])
			for _, field := range tt.missing {
				assert.Contains(t, domainErr.Message, field)
			}
		})
	}
}

func TestParseAIOutput_InvalidJSON(t *testing.T) {
	_, err := ParseAIOutput([]byte(`{"CourseInfo":`))
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeInvalidInput, domainErr.Code)
}

func TestQuizType_String(t *testing.T) {
	assert.Equal(t, "SingleSelect", QuizSingleSelect.String())
	assert.Equal(t, "TrueFalse", QuizTrueFalse.String())
	assert.Equal(t, "QuizType(7)", QuizType(7).String())
}
