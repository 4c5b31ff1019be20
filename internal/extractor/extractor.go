// Package extractor turns parts of an AI output into tag mapping fragments.
// Every function here is total: missing data yields empty strings or zero.
package extractor

import (
	"course-converter/internal/domain"
	"course-converter/internal/pagestyle"
)

// Global and cover tag names.
const (
	TagTrainingTitle       = "training-title"
	TagTrainingDescription = "training-description"
	TagCoverTitle          = "type0:title"
	TagCoverImageURL       = "type0:imageurl"
	TagCoverAudioDuration  = "type0:audioduration"
)

// Field suffixes appended to a section namespace.
const (
	FieldTitle         = "title"
	FieldAudioDuration = "audioduration"
	FieldSpeech        = "speech"
	FieldImageURL      = "imageurl"
	FieldImageURL1     = "imageurl1"
	FieldImageURL2     = "imageurl2"
)

// Key joins a namespace and a field into a tag name.
func Key(namespace, field string) string {
	return namespace + ":" + field
}

// CoverTags emits the course level tags. Every key is always present.
func CoverTags(course *domain.CourseInfo) domain.TagMapping {
	if course == nil {
		course = &domain.CourseInfo{}
	}
	return domain.TagMapping{
		TagTrainingTitle:       domain.StringTag(course.Title),
		TagTrainingDescription: domain.StringTag(course.Description),
		TagCoverTitle:          domain.StringTag(course.Title),
		TagCoverImageURL:       domain.StringTag(course.CourseImageURL),
		TagCoverAudioDuration:  domain.NumberTag(course.AudioDuration),
	}
}

// SectionTags emits the tags of a content or closing section.
//
// The speech tag is omitted when there is no audio so that default filling
// decides its value. Images follow an arity rule: one image is "imageurl",
// two or more are "imageurl1" and "imageurl2" and any further image is dropped.
func SectionTags(mapper *pagestyle.Mapper, section domain.Section) domain.TagMapping {
	ns := mapper.ToType(section.PageStyle)
	tags := domain.TagMapping{
		Key(ns, FieldTitle):         domain.StringTag(section.Title),
		Key(ns, FieldAudioDuration): domain.NumberTag(section.AudioDuration),
	}

	if section.SpeechAudioURL != "" {
		tags[Key(ns, FieldSpeech)] = domain.StringTag(section.SpeechAudioURL)
	}

	switch n := len(section.Images); {
	case n == 1:
		tags[Key(ns, FieldImageURL)] = domain.StringTag(section.Images[0].ImageURL)
	case n >= 2:
		tags[Key(ns, FieldImageURL1)] = domain.StringTag(section.Images[0].ImageURL)
		tags[Key(ns, FieldImageURL2)] = domain.StringTag(section.Images[1].ImageURL)
	}

	return tags
}

// QuizTags emits the tags of a quiz page. Question text is not substituted
// through tags; only the audio duration is.
func QuizTags(mapper *pagestyle.Mapper, section domain.Section) domain.TagMapping {
	if section.PageStyle.Kind() != pagestyle.KindQuiz {
		return domain.TagMapping{}
	}
	ns := mapper.ToType(section.PageStyle)
	return domain.TagMapping{
		Key(ns, FieldAudioDuration): domain.NumberTag(section.AudioDuration),
	}
}

// Partition splits sections by kind, keeping input order inside each group.
func Partition(sections []domain.Section) (content, closing, quiz, video []domain.Section) {
	for _, s := range sections {
		switch s.PageStyle.Kind() {
		case pagestyle.KindContent:
			content = append(content, s)
		case pagestyle.KindClosing:
			closing = append(closing, s)
		case pagestyle.KindQuiz:
			quiz = append(quiz, s)
		case pagestyle.KindVideo:
			video = append(video, s)
		}
	}
	return content, closing, quiz, video
}
