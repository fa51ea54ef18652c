package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Tracker holds and manages run metrics
type Tracker struct {
	mu   sync.Mutex
	data Metrics
}

// NewTracker creates a new metrics tracker for a crawl of rootURL
func NewTracker(rootURL, outputDir string) *Tracker {
	return &Tracker{
		data: Metrics{
			StartTime: time.Now(),
			RootURL:   rootURL,
			OutputDir: outputDir,
		},
	}
}

// RecordCrawl records the outcome of the crawl request
func (t *Tracker) RecordCrawl(status int, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.CrawlStatus = status
	t.data.CrawlRequestMs = duration.Milliseconds()
}

// SetDocumentsReceived records how many documents the response carried
func (t *Tracker) SetDocumentsReceived(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.DocumentsReceived = n
}

// IncrementDocumentsWritten increments the text file counter
func (t *Tracker) IncrementDocumentsWritten() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.DocumentsWritten++
}

// RecordDownload records a finished PDF download
func (t *Tracker) RecordDownload(bytes int64, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PDFsDownloaded++
	t.data.BytesDownloaded += bytes
	t.data.TotalDownloadMs += duration.Milliseconds()
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data.EndTime = time.Now()
	t.data.TerminationReason = reason

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress renders the current counters as a single line
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Documents: %d/%d written | PDFs: %d downloaded (%d bytes)",
		t.data.DocumentsWritten,
		t.data.DocumentsReceived,
		t.data.PDFsDownloaded,
		t.data.BytesDownloaded,
	)
}
