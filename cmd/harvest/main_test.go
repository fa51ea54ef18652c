package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, endpoint string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	body := `{
		"url": "https://www.example.com/docs",
		"endpoint": "` + endpoint + `",
		"output_root": "` + filepath.ToSlash(filepath.Join(dir, "out")) + `",
		"metrics_path": "` + filepath.ToSlash(filepath.Join(dir, "metrics.json")) + `"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun_RejectedCrawl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":{"error":"Invalid API key"}}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("TAVILY_API_KEY", "tvly-bad")
	cfgPath := writeConfig(t, dir, srv.URL)

	var stdout bytes.Buffer
	code := run([]string{"--config", cfgPath, "--env-file", filepath.Join(dir, "absent.env")}, &stdout)

	assert.Equal(t, 1, code)
	assert.Equal(t, "{\n    \"detail\": {\n        \"error\": \"Invalid API key\"\n    }\n}\n", stdout.String())
	assert.NoDirExists(t, filepath.Join(dir, "out"))
	assert.NoFileExists(t, filepath.Join(dir, "metrics.json"))
}

func TestRun_SavesCrawl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tvly-good", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"metadata":{"pages":1},"data":[{"url":"https://www.example.com/docs/intro","raw_content":"welcome"}]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("TAVILY_API_KEY", "tvly-good")
	cfgPath := writeConfig(t, dir, srv.URL)

	var stdout bytes.Buffer
	code := run([]string{"--config", cfgPath, "--env-file", filepath.Join(dir, "absent.env")}, &stdout)

	require.Equal(t, 0, code)
	assert.Empty(t, stdout.String())

	outDir := filepath.Join(dir, "out", "example")
	got, err := os.ReadFile(filepath.Join(outDir, "intro.txt"))
	require.NoError(t, err)
	assert.Equal(t, "welcome", string(got))
	assert.FileExists(t, filepath.Join(outDir, "crawl_result.json"))
	assert.FileExists(t, filepath.Join(outDir, "crawl_metadata.json"))
	assert.FileExists(t, filepath.Join(dir, "metrics.json"))
}

func TestRun_MissingAPIKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TAVILY_API_KEY", "")
	cfgPath := writeConfig(t, dir, "http://127.0.0.1:1")

	var stdout bytes.Buffer
	code := run([]string{"--config", cfgPath, "--env-file", filepath.Join(dir, "absent.env")}, &stdout)

	assert.Equal(t, 1, code)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}
