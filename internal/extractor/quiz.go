package extractor

import "course-converter/internal/domain"

// QuizView is the shape of a quiz as injected into a skeleton box.
type QuizView struct {
	Type           domain.QuizType
	Question       string
	Options        []string
	CorrectAnswers []string
	Statements     []StatementView
}

type StatementView struct {
	Statement string
	Answer    bool
}

// FormatQuiz normalizes a quiz for injection. Select questions carry options
// and correct answers, true/false questions carry statements.
func FormatQuiz(q domain.Quiz) QuizView {
	view := QuizView{Type: q.Type, Question: q.Question}
	switch q.Type {
	case domain.QuizTrueFalse:
		for _, st := range q.Statements {
			view.Statements = append(view.Statements, StatementView{
				Statement: st.Statement,
				Answer:    st.Answer.Bool(),
			})
		}
	default:
		view.Options = append([]string(nil), q.Options...)
		view.CorrectAnswers = append([]string(nil), q.CorrectAnswers...)
	}
	return view
}
