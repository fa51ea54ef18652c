package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alvmarrod/crawl-harvest/internal/tavily"
)

// Config holds all runtime configuration parameters
type Config struct {
	URL           string   `json:"url"`
	MaxDepth      int      `json:"max_depth"`
	MaxBreadth    int      `json:"max_breadth"`
	Limit         int      `json:"limit"`
	IncludeImages bool     `json:"include_images"`
	SelectPaths   []string `json:"select_paths"`
	SelectDomains []string `json:"select_domains"`
	AllowExternal bool     `json:"allow_external"`
	Categories    []string `json:"categories"`
	ExtractDepth  string   `json:"extract_depth"`

	Endpoint          string `json:"endpoint"`
	OutputRoot        string `json:"output_root"`
	UserAgent         string `json:"user_agent"`
	DownloadTimeoutMs int    `json:"download_timeout_ms"`
	MetricsPath       string `json:"metrics_path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	opts := tavily.DefaultOptions("")
	return &Config{
		MaxDepth:     opts.MaxDepth,
		MaxBreadth:   opts.MaxBreadth,
		Limit:        opts.Limit,
		ExtractDepth: opts.ExtractDepth,
		Endpoint:     tavily.DefaultEndpoint,
		OutputRoot:   ".",
	}
}

// LoadConfig reads configuration from a JSON file.
// Keys missing from the file keep their defaults; an empty path yields the defaults.
// The result is not validated so that command-line overrides can be applied first.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills string fields that were explicitly blanked in the file
func applyDefaults(cfg *Config) {
	if cfg.ExtractDepth == "" {
		cfg.ExtractDepth = tavily.ExtractBasic
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = tavily.DefaultEndpoint
	}
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = "."
	}
}

// Validate checks that required fields are present and values are sensible
func (cfg *Config) Validate() error {
	if err := cfg.CrawlOptions().Validate(); err != nil {
		return err
	}
	if cfg.DownloadTimeoutMs < 0 {
		return fmt.Errorf("download_timeout_ms must be >= 0")
	}
	return nil
}

// CrawlOptions converts the configuration into a crawl request
func (cfg *Config) CrawlOptions() tavily.Options {
	return tavily.Options{
		URL:           cfg.URL,
		MaxDepth:      cfg.MaxDepth,
		MaxBreadth:    cfg.MaxBreadth,
		Limit:         cfg.Limit,
		IncludeImages: cfg.IncludeImages,
		SelectPaths:   cfg.SelectPaths,
		SelectDomains: cfg.SelectDomains,
		AllowExternal: cfg.AllowExternal,
		Categories:    cfg.Categories,
		ExtractDepth:  cfg.ExtractDepth,
	}
}
