package template

import (
	"testing"

	"course-converter/internal/config"
	"course-converter/internal/jsontree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair(t *testing.T) {
	root, err := jsontree.Parse([]byte(`{
		"audio": {"file": "", "title": ""},
		"pages": [{"media": {"file": ""}}, {"media": {"file": "kept.mp3"}}],
		"file2": "",
		"list": ["", {"file": 0}]
	}`))
	require.NoError(t, err)

	n := Repair(root, "https://cdn.example/x.mp3")
	assert.Equal(t, 2, n)

	out, err := jsontree.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"audio": {"file": "https://cdn.example/x.mp3", "title": ""},
		"pages": [{"media": {"file": "https://cdn.example/x.mp3"}}, {"media": {"file": "kept.mp3"}}],
		"file2": "",
		"list": ["", {"file": 0}]
	}`, string(out))
}

func TestRepair_DefaultURL(t *testing.T) {
	root, err := jsontree.ParseObject([]byte(`{"file":""}`))
	require.NoError(t, err)

	assert.Equal(t, 1, Repair(root, ""))
	got, _ := root.String("file")
	assert.Equal(t, config.DefaultFallbackMediaURL, got)

	assert.Equal(t, 0, Repair(root, ""), "repairing twice changes nothing")
}
