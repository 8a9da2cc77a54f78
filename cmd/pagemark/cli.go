package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/inkfold/pagemark"
	pmhttp "github.com/inkfold/pagemark/http"
	"github.com/inkfold/pagemark/htmltomarkdown"
	"github.com/inkfold/pagemark/pdf"
	"github.com/inkfold/pagemark/pipeline"
	"github.com/inkfold/pagemark/ratelimit"
	"github.com/inkfold/pagemark/readability"
	"github.com/inkfold/pagemark/rod"
	pmslog "github.com/inkfold/pagemark/slog"
	"github.com/inkfold/pagemark/trafilatura"
	"golang.org/x/sync/semaphore"
)

// Dependencies holds services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the conversion HTTP server"`
	Convert ConvertCmd `cmd:"" help:"Convert a single URL and print the Markdown"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// PipelineFlags is the acquisition and transformation configuration shared
// by the serve and convert commands.
type PipelineFlags struct {
	ProbeTimeout time.Duration `default:"5s" env:"PAGEMARK_PROBE_TIMEOUT" help:"Timeout for the PDF content probe"`
	NavTimeout   time.Duration `default:"15s" env:"PAGEMARK_NAV_TIMEOUT" help:"Browser navigation timeout"`
	BrowserBin   string        `env:"PAGEMARK_BROWSER_BIN" help:"Browser executable location override"`
	MaxBrowsers  int64         `default:"4" env:"PAGEMARK_MAX_BROWSERS" help:"Cap on concurrent browser launches (0 = unlimited)"`
	HostRPS      float64       `default:"2" env:"PAGEMARK_HOST_RPS" help:"Outbound requests per second per target host"`
}

// service wires the conversion pipeline from the flags.
func (f PipelineFlags) service(logger *slog.Logger) pagemark.ConvertService {
	var browsers *semaphore.Weighted
	if f.MaxBrowsers > 0 {
		browsers = semaphore.NewWeighted(f.MaxBrowsers)
	}

	fetcher := rod.NewFetcher(
		rod.WithNavTimeout(f.NavTimeout),
		rod.WithBrowserBin(f.BrowserBin),
	)

	svc := &pipeline.Service{
		Acquirer: &pipeline.Acquirer{
			Prober:   pmhttp.NewProber(pmhttp.WithProbeTimeout(f.ProbeTimeout)),
			Fetcher:  rod.NewLoggingFetcher(fetcher, logger),
			Egress:   ratelimit.NewHostLimiter(f.HostRPS),
			Browsers: browsers,
			Logger:   logger,
		},
		HTML: &pipeline.HTMLTransformer{
			Extractors: []pagemark.Extractor{
				readability.NewExtractor(),
				trafilatura.NewExtractor(),
			},
			Converter: htmltomarkdown.NewConverter(),
			Logger:    logger,
		},
		PDF: pdf.NewConverter(),
	}

	return pmslog.NewLoggingService(svc, logger)
}
