package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alvmarrod/crawl-harvest/internal/archive"
	"github.com/alvmarrod/crawl-harvest/internal/config"
	"github.com/alvmarrod/crawl-harvest/internal/crawler"
	"github.com/alvmarrod/crawl-harvest/internal/metrics"
	"github.com/alvmarrod/crawl-harvest/internal/tavily"
	"github.com/alvmarrod/crawl-harvest/internal/version"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

// CLI holds the command-line flags; they override the config file
type CLI struct {
	Config  string `help:"Path to JSON configuration file." short:"c" type:"path"`
	URL     string `help:"Root URL to crawl." short:"u"`
	Output  string `help:"Directory the output folder is created in." short:"o" type:"path"`
	EnvFile string `help:"dotenv file to load TAVILY_API_KEY from." default:".env"`
	Debug   bool   `help:"Enable debug logging."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one harvest and returns the process exit code.
// A rejected crawl prints the error body to stdout.
func run(args []string, stdout io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("harvest"),
		kong.Description("Crawl a site through the Tavily Crawl API and save the documents locally."),
	)
	if err != nil {
		logrus.Errorf("Failed to build command line parser: %v", err)
		return 2
	}
	if _, err := parser.Parse(args); err != nil {
		logrus.Errorf("Failed to parse flags: %v", err)
		return 2
	}

	// Configure logging
	logrus.SetLevel(logrus.InfoLevel)
	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.Infof("crawl-harvest v%s starting...", version.Version)

	// Load configuration
	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		logrus.Errorf("Failed to load config: %v", err)
		return 1
	}
	if cli.URL != "" {
		cfg.URL = cli.URL
	}
	if cli.Output != "" {
		cfg.OutputRoot = cli.Output
	}
	if err := cfg.Validate(); err != nil {
		logrus.Errorf("Invalid configuration: %v", err)
		return 1
	}

	creds, err := config.LoadCredentials(cli.EnvFile)
	if err != nil {
		logrus.Errorf("Failed to load credentials: %v", err)
		return 1
	}

	client, err := tavily.NewClient(creds.APIKey, tavily.WithEndpoint(cfg.Endpoint))
	if err != nil {
		logrus.Errorf("Failed to initialize crawl client: %v", err)
		return 1
	}

	opts := cfg.CrawlOptions()
	outputDir := filepath.Join(cfg.OutputRoot, archive.OutputDirName(opts.URL))

	logrus.Infof("Configuration loaded: url=%s, depth=%d, breadth=%d, limit=%d, extract=%s, output=%s",
		opts.URL, opts.MaxDepth, opts.MaxBreadth, opts.Limit, opts.ExtractDepth, outputDir)

	tracker := metrics.NewTracker(opts.URL, outputDir)
	finish := func(reason string) {
		if cfg.MetricsPath == "" {
			return
		}
		if err := tracker.WriteToFile(cfg.MetricsPath, reason); err != nil {
			logrus.Errorf("Failed to write metrics: %v", err)
			return
		}
		logrus.Infof("Metrics written to %s", cfg.MetricsPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Submit the crawl
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " waiting for crawl of " + opts.URL
	s.Start()
	start := time.Now()
	resp, err := client.Crawl(ctx, opts)
	s.Stop()
	if err != nil {
		finish(metrics.ReasonFailed)
		logrus.Errorf("Crawl failed: %v", err)
		return 1
	}
	tracker.RecordCrawl(resp.StatusCode, time.Since(start))
	logrus.Infof("Status Code: %d", resp.StatusCode)

	// Materialize the result
	downloader := crawler.NewDownloader(cfg.UserAgent, time.Duration(cfg.DownloadTimeoutMs)*time.Millisecond)
	materializer := archive.NewMaterializer(outputDir, downloader, tracker)

	if err := materializer.Materialize(ctx, resp); err != nil {
		var rejection *tavily.RejectionError
		if errors.As(err, &rejection) {
			// a rejected crawl leaves no files behind, metrics included
			fmt.Fprintln(stdout, rejection.PrettyBody())
			logrus.Errorf("%v", rejection)
			return 1
		}
		finish(metrics.ReasonFailed)
		logrus.Errorf("Failed to save crawl result: %v", err)
		return 1
	}

	logrus.Info("Final stats: " + tracker.LogProgress())
	finish(metrics.ReasonCompleted)

	logrus.Infof("Crawl saved to %s", outputDir)
	return 0
}
