package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"course-converter/internal/domain"
	"course-converter/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchAI = `{"CourseInfo":{"Title":"Fire Safety"},"Sections":[],"GeneralQuiz":[]}`

func TestOutputName(t *testing.T) {
	assert.Equal(t, "course_FinalOutput.json", service.OutputName("in/course_AIinput.txt"))
	assert.Equal(t, "course_FinalOutput.json", service.OutputName("in/course.json"))
}

func TestBatchService_ConvertDir(t *testing.T) {
	env := newTestEnv(t)
	in := filepath.Join(env.root, "inputs")
	out := filepath.Join(env.root, "batch")
	writeFile(t, in, "good.json", batchAI)
	writeFile(t, in, "course_AIinput.txt", batchAI)
	writeFile(t, in, "bad.json", `{"CourseInfo":{}}`)
	writeFile(t, in, "notes.md", "ignored")
	writeFile(t, in, "old_FinalOutput.json", "{}")
	tmpl := writeFile(t, env.root, "template.json", `{"course":"#{[training-title]}#"}`)

	svc := service.NewBatchService(env.conversion(), env.store, nil)
	summary, err := svc.ConvertDir(context.Background(), domain.BatchRequest{
		InputDir:     in,
		TemplatePath: tmpl,
		OutputDir:    out,
		Concurrency:  2,
	})
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	bad := summary.Results[0]
	assert.Equal(t, filepath.Join(in, "bad.json"), bad.InputFile)
	assert.False(t, bad.Success)
	assert.Contains(t, bad.Error, "Sections")

	good := summary.Results[2]
	assert.True(t, good.Success)
	assert.Equal(t, filepath.Join(out, "good_FinalOutput.json"), good.OutputFile)
	require.NotNil(t, good.Stats)
	assert.Equal(t, 1, good.Stats.ReplacedTags)

	data, err := os.ReadFile(filepath.Join(out, "course_FinalOutput.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"course":"Fire Safety"}`, string(data))
}

func TestBatchService_EmptyDirectory(t *testing.T) {
	env := newTestEnv(t)
	in := filepath.Join(env.root, "empty")
	require.NoError(t, os.MkdirAll(in, 0o755))
	tmpl := writeFile(t, env.root, "template.json", `{}`)

	summary, err := service.NewBatchService(env.conversion(), env.store, nil).
		ConvertDir(context.Background(), domain.BatchRequest{InputDir: in, TemplatePath: tmpl, OutputDir: in})
	require.NoError(t, err)
	assert.Empty(t, summary.Results)
}

func TestBatchService_Errors(t *testing.T) {
	env := newTestEnv(t)
	tmpl := writeFile(t, env.root, "template.json", `{}`)
	svc := service.NewBatchService(env.conversion(), env.store, nil)

	_, err := svc.ConvertDir(context.Background(), domain.BatchRequest{InputDir: env.root, TemplatePath: filepath.Join(env.root, "missing.json")})
	assert.Equal(t, domain.CodeNotFound, domainErrorOf(t, err).Code)

	_, err = svc.ConvertDir(context.Background(), domain.BatchRequest{InputDir: filepath.Join(env.root, "nope"), TemplatePath: tmpl})
	assert.Equal(t, domain.CodeNotFound, domainErrorOf(t, err).Code)
}

func TestBatchService_OutputNameClash(t *testing.T) {
	env := newTestEnv(t)
	in := filepath.Join(env.root, "inputs")
	out := filepath.Join(env.root, "batch")
	writeFile(t, in, "course.json", batchAI)
	writeFile(t, in, "course_AIinput.txt", `{"CourseInfo":{"Title":"Other"},"Sections":[],"GeneralQuiz":[]}`)
	tmpl := writeFile(t, env.root, "template.json", `{"course":"#{[training-title]}#"}`)

	summary, err := service.NewBatchService(env.conversion(), env.store, nil).
		ConvertDir(context.Background(), domain.BatchRequest{InputDir: in, TemplatePath: tmpl, OutputDir: out})
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	first, second := summary.Results[0], summary.Results[1]
	assert.Equal(t, filepath.Join(in, "course.json"), first.InputFile)
	assert.True(t, first.Success)
	assert.Equal(t, filepath.Join(in, "course_AIinput.txt"), second.InputFile)
	assert.False(t, second.Success)
	assert.Equal(t, "output course_FinalOutput.json is already produced by course.json", second.Error)

	data, err := os.ReadFile(filepath.Join(out, "course_FinalOutput.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"course":"Fire Safety"}`, string(data))
}
