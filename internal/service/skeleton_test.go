package service_test

import (
	"encoding/json"
	"testing"

	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/pagestyle"
	"course-converter/internal/service"
	"course-converter/internal/tags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const skeletonJSON = `{
  "present": {
    "globalConfig": {"title": "", "description": "", "thumbnail": "", "typicalLearningTime": {"h": 0, "m": 0, "s": 0}},
    "boxesById": {
      "bo-1": {"type": "type1_1", "pagination": {"title": "", "narration": "", "content": "", "speech": "", "audioduration": 0}},
      "bo-2": {"type": "type2_2", "pagination": {"title": "", "imageurl": "", "imageurl2": ""}},
      "bo-3": {"pagination": {"type": "type9_9", "title": "", "images": ["", ""]}},
      "bo-4": {"type": "QuizBox", "pagination": {"question": "", "options": [], "correct": [], "statements": []}}
    }
  }
}`

func parseSkeleton(t *testing.T) *jsontree.Object {
	t.Helper()
	obj, err := jsontree.ParseObject([]byte(skeletonJSON))
	require.NoError(t, err)
	return obj
}

func pagination(t *testing.T, skeleton *jsontree.Object, id string) *jsontree.Object {
	t.Helper()
	p, ok := skeleton.Path("present", "boxesById", id, "pagination")
	require.True(t, ok, id)
	return p
}

func sampleAI() *domain.AIOutput {
	return &domain.AIOutput{
		CourseInfo: &domain.CourseInfo{
			Title:          "Fire Safety",
			Description:    "Basics",
			CourseImageURL: "https://img/cover.png",
			AudioDuration:  125,
		},
		Sections: []domain.Section{
			{
				PageStyle:      26,
				Title:          "Intro",
				NarrationText:  "Welcome",
				Content:        domain.StructuredContent(domain.ContentFields{Paragraph: "Para", List: "- a"}),
				SpeechAudioURL: "https://audio/1.mp3",
				AudioDuration:  12.5,
			},
			{
				PageStyle: 27,
				Title:     "Tools",
				Images:    []domain.ImageData{{ImageURL: "https://img/1.png"}, {ImageURL: "https://img/2.png"}},
			},
			{
				PageStyle: 15,
				Title:     "Gallery",
				Images:    []domain.ImageData{{ImageURL: "https://img/g1.png"}},
			},
		},
		GeneralQuiz: []domain.Quiz{
			{Type: domain.QuizSingleSelect, Question: "Which?", Options: []string{"A", "B"}, CorrectAnswers: []string{"A"}},
		},
	}
}

func TestSkeletonInjector_InjectsExactMatches(t *testing.T) {
	skeleton := parseSkeleton(t)
	ai := sampleAI()
	mapper := pagestyle.NewMapper(pagestyle.DefaultTable())
	injector := service.NewSkeletonInjector(service.MapperNamespace(mapper))

	report := injector.Inject(skeleton, ai, tags.NewBuilder(mapper).Build(ai))

	assert.Equal(t, 3, report.SectionsMapped)
	assert.Equal(t, 1, report.QuizzesMapped)
	assert.Equal(t, 0, report.HeuristicFallbacks)

	gc, ok := skeleton.Path("present", "globalConfig")
	require.True(t, ok)
	title, _ := gc.String("title")
	assert.Equal(t, "Fire Safety", title)
	thumb, _ := gc.String("thumbnail")
	assert.Equal(t, "https://img/cover.png", thumb)
	lt, ok := gc.Object("typicalLearningTime")
	require.True(t, ok)
	m, _ := lt.Get("m")
	s, _ := lt.Get("s")
	assert.Equal(t, json.Number("2"), m)
	assert.Equal(t, json.Number("5"), s)

	p1 := pagination(t, skeleton, "bo-1")
	v, _ := p1.String("content")
	assert.Equal(t, "Para\n- a", v)
	v, _ = p1.String("speech")
	assert.Equal(t, "https://audio/1.mp3", v)
	d, _ := p1.Get("audioduration")
	assert.Equal(t, json.Number("12.5"), d)

	p2 := pagination(t, skeleton, "bo-2")
	v, _ = p2.String("imageurl2")
	assert.Equal(t, "https://img/2.png", v)

	p3 := pagination(t, skeleton, "bo-3")
	images, _ := p3.Get("images")
	assert.Equal(t, []any{"https://img/g1.png", ""}, images)

	q := pagination(t, skeleton, "bo-4")
	v, _ = q.String("question")
	assert.Equal(t, "Which?", v)
	opts, _ := q.Get("options")
	assert.Equal(t, []any{"A", "B"}, opts)
	correct, _ := q.Get("correct")
	assert.Equal(t, []any{"A"}, correct)
	// Keys missing from the box are never added.
	assert.False(t, q.Has("correctAnswers"))
}

func TestSkeletonInjector_KeepsKeyOrder(t *testing.T) {
	skeleton := parseSkeleton(t)
	injector := service.NewSkeletonInjector(nil)
	injector.Inject(skeleton, sampleAI(), domain.TagMapping{})

	boxes, ok := skeleton.Path("present", "boxesById")
	require.True(t, ok)
	assert.Equal(t, []string{"bo-1", "bo-2", "bo-3", "bo-4"}, boxes.Keys())
	assert.Equal(t, []string{"title", "narration", "content", "speech", "audioduration"}, pagination(t, skeleton, "bo-1").Keys())
}

func TestSkeletonInjector_HeuristicFallbacks(t *testing.T) {
	skeleton := parseSkeleton(t)
	ai := &domain.AIOutput{
		CourseInfo: &domain.CourseInfo{},
		Sections: []domain.Section{
			{PageStyle: 4, Title: "positional"},
			{PageStyle: 4, Title: "positional 2"},
		},
		GeneralQuiz: []domain.Quiz{},
	}
	injector := service.NewSkeletonInjector(service.MapperNamespace(pagestyle.NewMapper(pagestyle.DefaultTable())))

	report := injector.Inject(skeleton, ai, domain.TagMapping{})

	assert.Equal(t, 2, report.SectionsMapped)
	assert.Equal(t, 2, report.HeuristicFallbacks)
	v, _ := pagination(t, skeleton, "bo-1").String("title")
	assert.Equal(t, "positional", v)
	v, _ = pagination(t, skeleton, "bo-2").String("title")
	assert.Equal(t, "positional 2", v)
}

func TestSkeletonInjector_FirstAvailableBeyondBoxCount(t *testing.T) {
	skeleton, err := jsontree.ParseObject([]byte(`{"present":{"boxesById":{"only":{"pagination":{"title":""}}}}}`))
	require.NoError(t, err)
	ai := &domain.AIOutput{
		CourseInfo:  &domain.CourseInfo{},
		Sections:    []domain.Section{{PageStyle: 26, Title: "one"}, {PageStyle: 26, Title: "two"}},
		GeneralQuiz: []domain.Quiz{},
	}

	report := service.NewSkeletonInjector(nil).Inject(skeleton, ai, domain.TagMapping{})

	assert.Equal(t, 2, report.SectionsMapped)
	assert.Equal(t, 2, report.HeuristicFallbacks)
	v, _ := pagination(t, skeleton, "only").String("title")
	assert.Equal(t, "two", v)
}

func TestSkeletonInjector_TrueFalseStatements(t *testing.T) {
	skeleton := parseSkeleton(t)
	ai := &domain.AIOutput{
		CourseInfo: &domain.CourseInfo{},
		Sections:   []domain.Section{},
		GeneralQuiz: []domain.Quiz{{
			Type:     domain.QuizTrueFalse,
			Question: "Statements",
			Statements: []domain.Statement{
				{Statement: "Sky is blue", Answer: domain.AnswerTrue},
				{Statement: "Fire is cold", Answer: domain.AnswerFalse},
			},
		}},
	}

	service.NewSkeletonInjector(nil).Inject(skeleton, ai, domain.TagMapping{})

	out, err := jsontree.Marshal(pagination(t, skeleton, "bo-4"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"Statements","options":[],"correct":[],"statements":[{"statement":"Sky is blue","answer":true},{"statement":"Fire is cold","answer":false}]}`, string(out))
}

func TestSkeletonInjector_QuizFallsBackToTrailingBoxes(t *testing.T) {
	skeleton, err := jsontree.ParseObject([]byte(`{"present":{"boxesById":{
		"a":{"pagination":{"title":""}},
		"b":{"pagination":{"title":""}},
		"c":{"pagination":{"title":""}},
		"d":{"pagination":{"title":""}}
	}}}`))
	require.NoError(t, err)
	ai := &domain.AIOutput{
		CourseInfo:  &domain.CourseInfo{},
		Sections:    []domain.Section{},
		GeneralQuiz: []domain.Quiz{{Question: "q0"}, {Question: "q1"}, {Question: "q2"}, {Question: "q3"}},
	}

	report := service.NewSkeletonInjector(nil).Inject(skeleton, ai, domain.TagMapping{})

	assert.Equal(t, 4, report.QuizzesMapped)
	assert.Equal(t, 4, report.HeuristicFallbacks)
}
