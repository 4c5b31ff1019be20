package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"course-converter/internal/pagestyle"
)

// AIOutput is the course content produced upstream and consumed read-only
// by a conversion.
type AIOutput struct {
	CourseInfo          *CourseInfo `json:"CourseInfo"`
	Sections            []Section   `json:"Sections"`
	GeneralQuiz         []Quiz      `json:"GeneralQuiz"`
	IsSuccess           bool        `json:"IsSuccess"`
	ErrorMessage        string      `json:"ErrorMessage"`
	ErrorCode           *int        `json:"ErrorCode,omitempty"`
	ThreadID            *string     `json:"ThreadId,omitempty"`
	FullDocumentText    *string     `json:"FullDocumentText,omitempty"`
	SummaryDocumentText *string     `json:"SummaryDocumentText,omitempty"`
}

type CourseInfo struct {
	Title          string  `json:"Title"`
	Description    string  `json:"Description"`
	Objective      *string `json:"Objective"`
	TargetAudience *string `json:"TargetAudience"`
	CourseImageURL string  `json:"CourseImageUrl"`
	AudioDuration  float64 `json:"AudioDuration"`
	SpeechAudioURL string  `json:"SpeechAudioUrl"`
	SpeechFileName string  `json:"SpeechFileName"`
}

// Section is one content page of the course.
type Section struct {
	PageStyle            pagestyle.Code  `json:"PageStyle"`
	YoutubeSearchKeyword *string         `json:"YoutubeSearchKeyword"`
	Index                int             `json:"Index"`
	Title                string          `json:"Title"`
	Description          *string         `json:"Description"`
	Content              SectionContent  `json:"Content"`
	NarrationText        string          `json:"NarrationText"`
	Images               []ImageData     `json:"Images"`
	YoutubeURL           *string         `json:"YoutubeUrl"`
	AudioDuration        float64         `json:"AudioDuration"`
	SpeechAudioURL       string          `json:"SpeechAudioUrl"`
	SpeechFileName       string          `json:"SpeechFileName"`
	RelevantDocumentPart json.RawMessage `json:"RelevantDocumentPart,omitempty"`
}

type ImageData struct {
	ImagePrompt  string  `json:"ImagePrompt"`
	ImageSize    string  `json:"ImageSize"`
	ImageURL     string  `json:"ImageUrl"`
	IsSuccess    bool    `json:"IsSuccess"`
	ErrorMessage *string `json:"ErrorMessage"`
}

// SectionContent is either a flat string or a set of named slots.
type SectionContent struct {
	Text   string
	Fields *ContentFields
}

// ContentFields holds the structured content slots of a section.
type ContentFields struct {
	Paragraph  string `json:"paragraph,omitempty"`
	Paragraph1 string `json:"paragraph1,omitempty"`
	Paragraph2 string `json:"paragraph2,omitempty"`
	Paragraph3 string `json:"paragraph3,omitempty"`
	List       string `json:"list,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	Subtitle1  string `json:"subtitle1,omitempty"`
	Subtitle2  string `json:"subtitle2,omitempty"`
	Subtitle3  string `json:"subtitle3,omitempty"`
	Subtext    string `json:"subtext,omitempty"`
	Subtext1   string `json:"subtext1,omitempty"`
	Subtext2   string `json:"subtext2,omitempty"`
	Subtext3   string `json:"subtext3,omitempty"`
}

// TextContent builds flat string content.
func TextContent(s string) SectionContent {
	return SectionContent{Text: s}
}

// StructuredContent builds slot based content.
func StructuredContent(f ContentFields) SectionContent {
	return SectionContent{Fields: &f}
}

func (c SectionContent) IsStructured() bool {
	return c.Fields != nil
}

func (c SectionContent) IsEmpty() bool {
	return c.Fields == nil && c.Text == ""
}

func (c *SectionContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = SectionContent{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &c.Text)
	case '{':
		var f ContentFields
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("section content: %w", err)
		}
		c.Fields = &f
		return nil
	default:
		return fmt.Errorf("section content must be a string or an object, got %s", string(data))
	}
}

func (c SectionContent) MarshalJSON() ([]byte, error) {
	switch {
	case c.Fields != nil:
		return json.Marshal(c.Fields)
	case c.Text != "":
		return json.Marshal(c.Text)
	default:
		return []byte("null"), nil
	}
}

// QuizType enumerates the supported question kinds.
type QuizType int

const (
	QuizSingleSelect QuizType = 0
	QuizMultiSelect  QuizType = 1
	QuizTrueFalse    QuizType = 2
)

func (t QuizType) String() string {
	switch t {
	case QuizSingleSelect:
		return "SingleSelect"
	case QuizMultiSelect:
		return "MultiSelect"
	case QuizTrueFalse:
		return "TrueFalse"
	default:
		return fmt.Sprintf("QuizType(%d)", int(t))
	}
}

type Quiz struct {
	Index          int         `json:"Index"`
	Type           QuizType    `json:"Type"`
	Question       string      `json:"Question"`
	Options        []string    `json:"Options"`
	CorrectAnswers []string    `json:"CorrectAnswers"`
	Statements     []Statement `json:"Statements"`
	IsSuccess      bool        `json:"IsSuccess"`
	ErrorMessage   *string     `json:"ErrorMessage"`
}

type Statement struct {
	Statement string          `json:"Statement"`
	Answer    StatementAnswer `json:"Answer"`
}

// StatementAnswer is "True" or "False". Upstream occasionally sends a JSON
// boolean instead, which is normalized on decode.
type StatementAnswer string

const (
	AnswerTrue  StatementAnswer = "True"
	AnswerFalse StatementAnswer = "False"
)

func (a *StatementAnswer) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*a = AnswerTrue
		} else {
			*a = AnswerFalse
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("statement answer: %w", err)
	}
	switch strings.ToLower(s) {
	case "true":
		*a = AnswerTrue
	case "false":
		*a = AnswerFalse
	default:
		*a = StatementAnswer(s)
	}
	return nil
}

func (a StatementAnswer) Bool() bool {
	return a == AnswerTrue
}

// Validate checks that the top-level collections are present. An empty
// Sections or GeneralQuiz list is valid; an absent one is not.
func (o *AIOutput) Validate() error {
	if o == nil {
		return NewValidationError("CourseInfo", "Sections", "GeneralQuiz")
	}
	var missing []string
	if o.CourseInfo == nil {
		missing = append(missing, "CourseInfo")
	}
	if o.Sections == nil {
		missing = append(missing, "Sections")
	}
	if o.GeneralQuiz == nil {
		missing = append(missing, "GeneralQuiz")
	}
	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	return nil
}

// ParseAIOutput decodes raw AI output JSON. It does not validate.
func ParseAIOutput(data []byte) (*AIOutput, error) {
	var out AIOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, NewError(CodeInvalidInput, "AI output is not valid JSON", err)
	}
	return &out, nil
}
