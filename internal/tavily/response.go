package tavily

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the raw result of a crawl call
type Response struct {
	StatusCode int
	Body       []byte
}

// Result is the decoded part of a successful crawl response that gets materialized
type Result struct {
	Metadata  json.RawMessage `json:"metadata"`
	Documents []Document      `json:"data"`
}

// Document is a single crawled page
type Document struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

// OK reports whether the crawl call succeeded
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode parses the response body
func (r *Response) Decode() (*Result, error) {
	var result Result
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode crawl response: %w", err)
	}
	return &result, nil
}

// RejectionError is returned when the crawl endpoint answers with a non-success status
type RejectionError struct {
	StatusCode int
	Body       []byte
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("crawl request rejected: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// PrettyBody returns the error body indented when it is JSON, verbatim otherwise
func (e *RejectionError) PrettyBody() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Body, "", "    "); err != nil {
		return string(e.Body)
	}
	return buf.String()
}
