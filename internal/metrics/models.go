package metrics

import "time"

// Termination reasons recorded in the run summary
const (
	ReasonCompleted = "completed"
	ReasonFailed    = "failed"
)

// Metrics tracks run statistics for export on exit
type Metrics struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	RootURL           string    `json:"root_url"`
	OutputDir         string    `json:"output_dir"`
	CrawlStatus       int       `json:"crawl_status"`
	CrawlRequestMs    int64     `json:"crawl_request_ms"`
	DocumentsReceived int       `json:"documents_received"`
	DocumentsWritten  int       `json:"documents_written"`
	PDFsDownloaded    int       `json:"pdfs_downloaded"`
	BytesDownloaded   int64     `json:"bytes_downloaded"`
	TotalDownloadMs   int64     `json:"total_download_ms"`
	TerminationReason string    `json:"termination_reason"`
}
