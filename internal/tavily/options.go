package tavily

import (
	"fmt"
	"strings"
)

// Extract depths accepted by the crawl endpoint
const (
	ExtractBasic    = "basic"
	ExtractAdvanced = "advanced"
)

// Options describes a single crawl request
type Options struct {
	URL           string
	MaxDepth      int
	MaxBreadth    int
	Limit         int
	IncludeImages bool
	SelectPaths   []string
	SelectDomains []string
	AllowExternal bool
	Categories    []string
	ExtractDepth  string
}

// DefaultOptions returns the options the API is called with when nothing else is specified
func DefaultOptions(url string) Options {
	return Options{
		URL:          url,
		MaxDepth:     1,
		MaxBreadth:   20,
		Limit:        50,
		ExtractDepth: ExtractBasic,
	}
}

// Validate checks the options before they are sent
func (o Options) Validate() error {
	if strings.TrimSpace(o.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0")
	}
	if o.MaxBreadth < 0 {
		return fmt.Errorf("max_breadth must be >= 0")
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}
	if o.ExtractDepth != ExtractBasic && o.ExtractDepth != ExtractAdvanced {
		return fmt.Errorf("extract_depth must be %q or %q, got %q", ExtractBasic, ExtractAdvanced, o.ExtractDepth)
	}
	return nil
}

// Payload builds the JSON request body.
// Optional keys are left out entirely when unset so the API applies its own defaults.
func (o Options) Payload() map[string]any {
	payload := map[string]any{
		"url":            o.URL,
		"max_depth":      o.MaxDepth,
		"max_breadth":    o.MaxBreadth,
		"limit":          o.Limit,
		"include_images": o.IncludeImages,
		"extract_depth":  o.ExtractDepth,
	}

	if len(o.SelectPaths) > 0 {
		payload["select_paths"] = append([]string(nil), o.SelectPaths...)
	}
	if len(o.SelectDomains) > 0 {
		payload["select_domains"] = append([]string(nil), o.SelectDomains...)
	}
	if o.AllowExternal {
		payload["allow_external"] = true
	}
	if len(o.Categories) > 0 {
		payload["categories"] = append([]string(nil), o.Categories...)
	}

	return payload
}
