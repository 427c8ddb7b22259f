package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tweetDoc struct {
	ID      int64  `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, tweetDoc{ID: 7, Content: "hello"})
	require.NoError(t, err)

	got := buf.String()
	assert.Contains(t, got, `"id": 7`)
	assert.Contains(t, got, `"content": "hello"`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestPrintJSONArray(t *testing.T) {
	docs := []tweetDoc{{ID: 1, Content: "a"}, {ID: 2, Content: "b"}}

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, docs))

	got := buf.String()
	assert.Contains(t, got, `"content": "a"`)
	assert.Contains(t, got, `"content": "b"`)
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	err := PrintYAML(&buf, tweetDoc{ID: 7, Content: "hello"})
	require.NoError(t, err)

	got := buf.String()
	assert.Contains(t, got, "id: 7")
	assert.Contains(t, got, "content: hello")
}

func TestPrintYAMLArray(t *testing.T) {
	docs := []tweetDoc{{ID: 1, Content: "a"}, {ID: 2, Content: "b"}}

	var buf bytes.Buffer
	require.NoError(t, PrintYAML(&buf, docs))

	got := buf.String()
	assert.Contains(t, got, "- id: 1")
	assert.Contains(t, got, "- id: 2")
}
