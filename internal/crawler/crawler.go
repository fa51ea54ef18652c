package crawler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// Downloader fetches documents referenced by a crawl result and saves them verbatim
type Downloader struct {
	userAgent string
	timeout   time.Duration
}

// NewDownloader creates a downloader. A zero timeout keeps colly's default.
func NewDownloader(userAgent string, timeout time.Duration) *Downloader {
	return &Downloader{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// rawBodyTransport drops Content-Type parameters so colly never transcodes a body
// by its declared charset. Downloads are stored byte for byte.
type rawBodyTransport struct {
	base http.RoundTripper
}

func (t rawBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if contentType := resp.Header.Get("Content-Type"); strings.Contains(contentType, ";") {
		mediaType, _, _ := strings.Cut(contentType, ";")
		resp.Header.Set("Content-Type", strings.TrimSpace(mediaType))
	}
	return resp, nil
}

// newCollector configures a fresh Colly collector for a single download
func (d *Downloader) newCollector(ctx context.Context) *colly.Collector {
	options := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.MaxBodySize(0),           // PDFs routinely exceed the 10MB default
		colly.ParseHTTPErrorResponse(), // error pages are saved as-is
	}
	if d.userAgent != "" {
		options = append(options, colly.UserAgent(d.userAgent))
	}

	c := colly.NewCollector(options...)
	c.WithTransport(rawBodyTransport{base: http.DefaultTransport})
	if d.timeout > 0 {
		c.SetRequestTimeout(d.timeout)
	}
	return c
}

// Download performs a GET on rawURL and writes the response body to dest.
// It returns the number of bytes written.
func (d *Downloader) Download(ctx context.Context, rawURL, dest string) (int64, error) {
	c := d.newCollector(ctx)

	var (
		written int64
		saveErr error
	)

	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			logrus.Warnf("Download of %s returned status %d, saving body anyway", rawURL, r.StatusCode)
		}
		if err := r.Save(dest); err != nil {
			saveErr = fmt.Errorf("failed to save %s: %w", dest, err)
			return
		}
		written = int64(len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		logrus.Errorf("OnError called for %s: %v", rawURL, err)
	})

	if err := c.Visit(rawURL); err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	if saveErr != nil {
		return 0, saveErr
	}

	return written, nil
}
