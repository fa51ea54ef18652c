package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBaseName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://ex.com/a/report.pdf", "report"},
		{"https://ex.com/page", "page"},
		{"https://ex.com/a/b.tar.gz", "b"},
		{"https://ex.com/docs/", "docs"},
		{"https://ex.com/docs//", "docs"},
		{"https://ex.com/a/x.pdf?dl=1#p2", "x"},
		{"https://ex.com/search?q=a.b", "search"},
		{"https://ex.com", "index"},
		{"https://ex.com/", "index"},
		{"https://ex.com/.hidden", "index"},
		{"https://www.baldor.com/mvc/DownloadCenter/Files/9AC-1.PDF", "9AC-1"},
		{"report.v2.pdf", "report"},
		{"https://ex.com/a/b%2Fc.pdf", "b%2Fc"},
		{"https://ex.com/a/v1%2E2.pdf", "v1%2E2"},
		{"https://ex.com/a/My%20Manual.pdf", "My%20Manual"},
		{"https://ex.com/a/b%2Fc.pdf?v=1", "b%2Fc"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveBaseName(tt.url))
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("https://ex.com/a/report.pdf"))
	assert.False(t, IsPDF("https://ex.com/page"))
	// literal suffix match only
	assert.False(t, IsPDF("https://ex.com/a/report.PDF"))
	assert.False(t, IsPDF("https://ex.com/a/report.pdf?dl=1"))
	assert.True(t, IsPDF("https://ex.com/view?file=.pdf"))
}

func TestOutputDirName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.baldor.com/catalog#category=69", "baldor"},
		{"https://www.rossi.com/en/Products/Industrial-Gear-Units/G-Series/", "rossi"},
		{"https://docs.example.com/guide", "https:__docs"},
		{"https://www.", "crawl"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputDirName(tt.url))
		})
	}
}
