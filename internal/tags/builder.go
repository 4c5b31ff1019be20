package tags

import (
	"course-converter/internal/domain"
	"course-converter/internal/extractor"
	"course-converter/internal/pagestyle"
)

// Builder assembles the tag table of an AI output.
type Builder struct {
	mapper *pagestyle.Mapper
}

func NewBuilder(mapper *pagestyle.Mapper) *Builder {
	if mapper == nil {
		mapper = pagestyle.NewMapper(pagestyle.DefaultTable())
	}
	return &Builder{mapper: mapper}
}

func (b *Builder) Mapper() *pagestyle.Mapper {
	return b.mapper
}

// Build merges cover, content, closing and quiz tags in that order. On a key
// collision the later fragment wins. Video sections emit nothing.
func (b *Builder) Build(ai *domain.AIOutput) domain.TagMapping {
	mapping := domain.TagMapping{}
	if ai == nil {
		return mapping
	}

	mapping.Merge(extractor.CoverTags(ai.CourseInfo))

	content, closing, quiz, _ := extractor.Partition(ai.Sections)
	for _, s := range content {
		mapping.Merge(extractor.SectionTags(b.mapper, s))
	}
	for _, s := range closing {
		mapping.Merge(extractor.SectionTags(b.mapper, s))
	}
	for _, s := range quiz {
		mapping.Merge(extractor.QuizTags(b.mapper, s))
	}
	return mapping
}

// BuildForTemplate builds the table and fills defaults for every tag the
// template text references.
func (b *Builder) BuildForTemplate(ai *domain.AIOutput, templateText string) domain.TagMapping {
	mapping := b.Build(ai)
	FillDefaults(mapping, Names(templateText))
	return mapping
}
