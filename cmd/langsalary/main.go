package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/report"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
)

const sourceAll = "all"

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: ./config.yaml if present)")
	source := flag.String("source", sourceAll, "Source to query (all, headhunter, superjob)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	trace := flag.Bool("trace", false, "Log every vacancy that contributes to an average")
	noProgress := flag.Bool("no-progress", false, "Do not draw progress bars")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	logger := ui.NewLogger(ui.LogLevel(*debug, *trace))
	runID := uuid.NewString()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", logger.Args("run", runID, "error", err))
		os.Exit(1)
	}
	if err := selectSource(cfg, *source); err != nil {
		logger.Error("invalid flags", logger.Args("run", runID, "error", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", logger.Args("run", runID, "error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress io.Writer = os.Stderr
	if *noProgress {
		progress = nil
	}

	logger.Debug("starting", logger.Args(
		"run", runID,
		"sources", cfg.Sources,
		"languages", len(cfg.Languages),
		"max_pages", cfg.MaxPages,
	))

	if err := run(ctx, cfg, os.Stdout, progress, logger); err != nil {
		logger.Error("run failed", logger.Args("run", runID, "error", err))
		stop()
		os.Exit(1)
	}

	logger.Debug("done", logger.Args("run", runID))
}

// run prints one table per configured source, in config order.
func run(ctx context.Context, cfg *config.AppConfig, out, progress io.Writer, logger *pterm.Logger) error {
	opts := []report.Option{report.WithLogger(logger), report.WithMaxPages(cfg.MaxPages)}
	if progress != nil {
		opts = append(opts, report.WithProgress(progress))
	}
	reporter := report.New(cfg.LanguageList(), cfg.SearchPrefix, opts...)

	sources, err := buildSources(cfg, logger)
	if err != nil {
		return err
	}

	for _, src := range sources {
		table, err := reporter.Build(ctx, src)
		if err != nil {
			return err
		}

		rendered, err := ui.RenderTable(table)
		if err != nil {
			return fmt.Errorf("render %s: %w", src.Name(), err)
		}
		fmt.Fprintln(out, rendered)
	}

	return nil
}

// selectSource narrows cfg.Sources to the one named on the command line.
func selectSource(cfg *config.AppConfig, source string) error {
	if source == "" || source == sourceAll {
		return nil
	}
	if !config.IsValidSource(source) {
		return fmt.Errorf("invalid source %q: must be one of %s, %s, %s",
			source, sourceAll, config.SourceHeadHunter, config.SourceSuperJob)
	}
	cfg.Sources = []string{source}
	return nil
}

func buildSources(cfg *config.AppConfig, logger *pterm.Logger) ([]scraper.Source, error) {
	opts := []scraper.Option{
		scraper.WithHTTPClient(client.CreateHTTPClient(cfg.Timeout)),
		scraper.WithPerPage(cfg.PerPage),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithLogger(logger),
	}

	sources := make([]scraper.Source, 0, len(cfg.Sources))
	for _, name := range cfg.Sources {
		switch name {
		case config.SourceHeadHunter:
			sources = append(sources, scraper.NewHeadHunter(cfg.HeadHunter, opts...))
		case config.SourceSuperJob:
			sources = append(sources, scraper.NewSuperJob(cfg.SuperJob, opts...))
		default:
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	return sources, nil
}
