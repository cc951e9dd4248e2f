package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionResponse = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "test-model",
	"choices": [{
		"index": 0,
		"finish_reason": "stop",
		"message": {"role": "assistant", "content": "## Key Points\n* **Term**: definition"}
	}]
}`

func runCommand(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCommand(fs)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func newCompletionServer(t *testing.T, status int, body string) *atomic.Int32 {
	t.Helper()

	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("SUMMARIZER_BASE_URL", ts.URL+"/")

	return &calls
}

func TestRenderWritesPDF(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "notes.txt", []byte("## Heading\n* **Bold** bullet\n"), 0o644))

	stdout, _, err := runCommand(t, fs, "render", "notes.txt", "-o", "out/week1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "out/week1.pdf\n", stdout)

	data, err := afero.ReadFile(fs, "out/week1.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderDefaultOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "notes.txt", []byte("Plain paragraph."), 0o644))

	_, _, err := runCommand(t, fs, "render", "notes.txt")
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "summary.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRenderMissingFile(t *testing.T) {
	_, _, err := runCommand(t, afero.NewMemMapFs(), "render", "missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestSummarizeWritesSummaryAndPDF(t *testing.T) {
	calls := newCompletionServer(t, http.StatusOK, completionResponse)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "lecture.txt", []byte("\xef\xbb\xbfLecture transcript"), 0o644))

	stdout, _, err := runCommand(t, fs, "summarize", "lecture.txt", "-o", "lecture.pdf")
	require.NoError(t, err)
	assert.Equal(t, "## Key Points\n* **Term**: definition\n", stdout)
	assert.Equal(t, int32(1), calls.Load())

	data, err := afero.ReadFile(fs, "lecture.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSummarizeUpstreamError(t *testing.T) {
	calls := newCompletionServer(t, http.StatusUnauthorized, `{"error":"invalid key"}`)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "lecture.txt", []byte("Lecture transcript"), 0o644))

	stdout, _, err := runCommand(t, fs, "summarize", "lecture.txt")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "ERROR"), err.Error())
	assert.Equal(t, `ERROR: 401 - {"error":"invalid key"}`, err.Error())
	assert.Empty(t, stdout)
	assert.Equal(t, int32(1), calls.Load())

	exists, err := afero.Exists(fs, "summary.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSummarizeRequiresAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "lecture.txt", []byte("Lecture transcript"), 0o644))

	_, _, err := runCommand(t, fs, "summarize", "lecture.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
