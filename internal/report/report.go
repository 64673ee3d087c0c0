package report

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/stats"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
)

const progressTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{string . "language"}}`

// Reporter builds one summary table per source for a fixed list of languages.
type Reporter struct {
	languages []string
	prefix    string
	maxPages  int
	progress  io.Writer
	logger    *pterm.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithProgress draws a progress bar to w while a table is being built.
func WithProgress(w io.Writer) Option {
	return func(r *Reporter) { r.progress = w }
}

// WithLogger sets the logger passed down to the collectors.
func WithLogger(l *pterm.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxPages bounds the number of pages fetched per language.
func WithMaxPages(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.maxPages = n
		}
	}
}

// New creates a Reporter. The language list is copied, so later changes by
// the caller do not affect the report.
func New(languages []string, prefix string, opts ...Option) *Reporter {
	r := &Reporter{
		languages: slices.Clone(languages),
		prefix:    prefix,
		maxPages:  50,
		logger:    ui.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Languages returns a copy of the languages the reporter covers.
func (r *Reporter) Languages() []string {
	return slices.Clone(r.languages)
}

// SearchText builds the query sent to a provider for a language.
func (r *Reporter) SearchText(language string) string {
	return strings.TrimSpace(r.prefix + " " + language)
}

// Build collects statistics for every language from src, in order. The first
// error aborts the table.
func (r *Reporter) Build(ctx context.Context, src scraper.Source) (*models.ReportTable, error) {
	table := &models.ReportTable{
		Title:  src.Title(),
		Header: models.ReportHeader,
		Rows:   make([]models.LanguageStats, 0, len(r.languages)),
	}

	bar := r.startProgress(src.Title())
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	collector := stats.NewCollector(src, r.maxPages, r.logger)
	for _, lang := range r.languages {
		if bar != nil {
			bar.Set("language", lang)
		}

		row, err := collector.Collect(ctx, r.SearchText(lang))
		if err != nil {
			return nil, fmt.Errorf("report: %s: %s: %w", src.Title(), lang, err)
		}
		row.Language = lang
		table.Rows = append(table.Rows, row)

		if !row.HasAverage() {
			r.logger.Warn("no salary data", r.logger.Args("source", src.Name(), "language", lang, "found", row.Found))
		}

		if bar != nil {
			bar.Increment()
		}
	}

	r.logger.Info("report ready", r.logger.Args("source", src.Name(), "languages", len(table.Rows)))
	return table, nil
}

func (r *Reporter) startProgress(title string) *pb.ProgressBar {
	if r.progress == nil {
		return nil
	}

	bar := pb.ProgressBarTemplate(progressTemplate).New(len(r.languages))
	bar.SetWriter(r.progress)
	bar.Set("prefix", title)
	bar.Set("language", "")
	return bar.Start()
}
