package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alvmarrod/crawl-harvest/internal/metrics"
	"github.com/alvmarrod/crawl-harvest/internal/tavily"
	"github.com/sirupsen/logrus"
)

// Output file names inside the destination directory
const (
	ResultFile   = "crawl_result.json"
	MetadataFile = "crawl_metadata.json"
)

const jsonIndent = "    "

// Fetcher downloads a URL to a local file and returns the number of bytes written
type Fetcher interface {
	Download(ctx context.Context, rawURL, dest string) (int64, error)
}

// Materializer writes a crawl response to a directory of flat files
type Materializer struct {
	dir     string
	fetcher Fetcher
	tracker *metrics.Tracker
}

// NewMaterializer creates a materializer writing into dir
func NewMaterializer(dir string, fetcher Fetcher, tracker *metrics.Tracker) *Materializer {
	return &Materializer{
		dir:     dir,
		fetcher: fetcher,
		tracker: tracker,
	}
}

// Dir returns the destination directory
func (m *Materializer) Dir() string {
	return m.dir
}

// Materialize writes the response to disk.
// A non-success response yields a *tavily.RejectionError and leaves the filesystem untouched.
// The first failure aborts the remaining documents.
func (m *Materializer) Materialize(ctx context.Context, resp *tavily.Response) error {
	if !resp.OK() {
		return &tavily.RejectionError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	result, err := resp.Decode()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := m.writeJSON(ResultFile, resp.Body); err != nil {
		return err
	}

	if len(result.Metadata) == 0 {
		return fmt.Errorf("crawl response has no metadata field")
	}
	if err := m.writeJSON(MetadataFile, result.Metadata); err != nil {
		return err
	}

	if result.Documents == nil {
		return fmt.Errorf("crawl response has no data field")
	}

	if m.tracker != nil {
		m.tracker.SetDocumentsReceived(len(result.Documents))
	}
	logrus.Infof("Materializing %d documents into %s", len(result.Documents), m.dir)

	for _, doc := range result.Documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.writeDocument(ctx, doc); err != nil {
			return err
		}
	}

	return nil
}

// writeDocument writes the text file for doc and downloads the PDF when the URL names one
func (m *Materializer) writeDocument(ctx context.Context, doc tavily.Document) error {
	base := DeriveBaseName(doc.URL)

	txtPath := filepath.Join(m.dir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(doc.RawContent), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", txtPath, err)
	}
	if m.tracker != nil {
		m.tracker.IncrementDocumentsWritten()
	}
	logrus.Infof("Wrote %s (%s)", filepath.Base(txtPath), doc.URL)

	if !IsPDF(doc.URL) {
		return nil
	}

	pdfPath := filepath.Join(m.dir, base+".pdf")
	start := time.Now()
	n, err := m.fetcher.Download(ctx, doc.URL, pdfPath)
	if err != nil {
		return err
	}
	if m.tracker != nil {
		m.tracker.RecordDownload(n, time.Since(start))
	}
	logrus.Infof("Downloaded %s (%d bytes)", filepath.Base(pdfPath), n)

	return nil
}

// writeJSON re-indents raw JSON and writes it to name inside the output directory
func (m *Materializer) writeJSON(name string, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", jsonIndent); err != nil {
		return fmt.Errorf("failed to format %s: %w", name, err)
	}

	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
