package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliAI = `{"CourseInfo":{"Title":"Fire Safety"},"Sections":[],"GeneralQuiz":[]}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	ai := write(t, dir, "ai.json", cliAI)
	tmpl := write(t, dir, "template.json", `{"course":"#{[training-title]}#"}`)
	output := filepath.Join(dir, "out", "final.json")

	out, err := run(t, "convert", "--ai-output", ai, "--template", tmpl, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "replaced=1")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"course":"Fire Safety"}`, string(data))
}

func TestConvertCommand_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	ai := write(t, dir, "ai.json", cliAI)

	_, err := run(t, "convert", "--ai-output", ai, "--template", filepath.Join(dir, "none.json"), "--output", filepath.Join(dir, "o.json"))
	assert.Error(t, err)

	_, err = run(t, "convert", "--ai-output", ai)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "validate", "--ai-output", write(t, dir, "ok.json", cliAI))
	require.NoError(t, err)
	assert.Contains(t, out, "0 sections, 0 quizzes")

	_, err = run(t, "validate", "--ai-output", write(t, dir, "bad.json", `{"CourseInfo":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeneralQuiz")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(in, 0o755))
	write(t, in, "a_AIinput.txt", cliAI)
	tmpl := write(t, dir, "template.json", `{"course":"#{[training-title]}#"}`)
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "batch", "--input-dir", in, "--template", tmpl, "--output-dir", outDir, "--concurrency", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "OK   a_AIinput.txt -> a_FinalOutput.json")
	assert.FileExists(t, filepath.Join(outDir, "a_FinalOutput.json"))

	write(t, in, "b.json", `not json`)
	out, err = run(t, "batch", "--input-dir", in, "--template", tmpl, "--output-dir", outDir)
	require.Error(t, err)
	assert.Contains(t, out, "1 succeeded, 1 failed")
}

func TestExecute_ExitStatus(t *testing.T) {
	dir := t.TempDir()
	ok := write(t, dir, "ok.json", cliAI)
	bad := write(t, dir, "bad.json", `{"CourseInfo":{}}`)

	assert.Equal(t, 0, execute([]string{"validate", "--ai-output", ok}))
	assert.Equal(t, 1, execute([]string{"validate", "--ai-output", bad}))
	assert.Equal(t, 1, execute([]string{"convert"}))
}
