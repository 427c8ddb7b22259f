package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	td := NewTableData("ID", "Name", "Followers")

	assert.Equal(t, []string{"ID", "Name", "Followers"}, td.Headers())
	assert.Empty(t, td.Rows())

	td.AddRow("1", "alice", "2")
	td.AddRow("2", "bob", "0")

	rows := td.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "alice", "2"}, rows[0])
	assert.Equal(t, []string{"2", "bob", "0"}, rows[1])
}

func TestPrintTable(t *testing.T) {
	td := NewTableData("ID", "Content")
	td.AddRow("7", "hello world")
	td.AddRow("8", "second tweet")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, td))

	got := buf.String()
	// Headers are uppercased, cells are not.
	assert.Contains(t, got, "ID")
	assert.Contains(t, got, "CONTENT")
	assert.Contains(t, got, "hello world")
	assert.Contains(t, got, "second tweet")
	assert.NotContains(t, got, "|")
}

func TestSimpleTable(t *testing.T) {
	pairs := [][2]string{
		{"Server", "http://localhost:8000"},
		{"Status", "healthy"},
	}

	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, pairs))

	got := buf.String()
	assert.Contains(t, got, "Server")
	assert.Contains(t, got, "http://localhost:8000")
	assert.Contains(t, got, "Status")
	assert.Contains(t, got, "healthy")
}
