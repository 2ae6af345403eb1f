package iojson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "Failed to load posts", map[string]any{"status": 500}))

	var got Error
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Failed to load posts", got.Message)
	assert.InDelta(t, 500, got.Data["status"], 0)
}

func TestWriteError_unmarshalable_data(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "bad", map[string]any{"fn": func() {}}))

	var got Error
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "bad", got.Message)
	assert.Contains(t, got.Data, "json_error")
}

func TestWriteLines(t *testing.T) {
	type row struct {
		ID string `json:"id"`
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []row{{"a"}, {"b"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":"a"}`, lines[0])
	assert.JSONEq(t, `{"id":"b"}`, lines[1])
}

func TestWrite_indents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]string{"name": "Sarah"}))
	assert.Equal(t, "{\n  \"name\": \"Sarah\"\n}\n", buf.String())
}
