// Package stats walks a vacancy source page by page and folds the results
// into per-language figures.
package stats

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// ErrPageLimit is returned when a source still reports more pages after the
// configured maximum has been fetched.
var ErrPageLimit = errors.New("page limit reached before the last page")

// Pages returns the pages of a search in order, starting at 0. The sequence
// ends after the first page whose More flag is false, after the first error,
// or with ErrPageLimit once maxPages pages have been fetched.
func Pages(ctx context.Context, src scraper.Source, text string, maxPages int) iter.Seq2[*models.Page, error] {
	return func(yield func(*models.Page, error) bool) {
		for index := 0; index < maxPages; index++ {
			page, err := src.FetchPage(ctx, text, index)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) || !page.More {
				return
			}
		}
		yield(nil, fmt.Errorf("%s: %q: %w (%d)", src.Name(), text, ErrPageLimit, maxPages))
	}
}

// Collector aggregates vacancy statistics for a single source.
type Collector struct {
	src      scraper.Source
	maxPages int
	logger   *pterm.Logger
}

// NewCollector creates a Collector. A nil logger discards output.
func NewCollector(src scraper.Source, maxPages int, logger *pterm.Logger) *Collector {
	if logger == nil {
		logger = ui.DiscardLogger()
	}
	return &Collector{src: src, maxPages: maxPages, logger: logger}
}

// Collect fetches every page for text and returns the provider's total, the
// number of vacancies with a known salary and their truncated average. With
// no known salaries the average is 0.
func (c *Collector) Collect(ctx context.Context, text string) (models.LanguageStats, error) {
	var (
		result models.LanguageStats
		total  int
		pages  int
	)

	for page, err := range Pages(ctx, c.src, text, c.maxPages) {
		if err != nil {
			return models.LanguageStats{}, err
		}
		pages++
		result.Found = page.Found

		for _, v := range page.Vacancies {
			estimate, ok := c.src.PredictSalary(v)
			if !ok {
				continue
			}
			result.Processed++
			total += estimate

			c.logger.Trace("vacancy", c.logger.Args(
				"source", c.src.Name(),
				"name", v.Name,
				"employer", v.Employer,
				"salary", estimate,
				"snippet", utils.Truncate(v.Snippet, 80),
			))
		}
	}

	if result.Processed > 0 {
		result.AverageSalary = total / result.Processed
	}

	c.logger.Debug("collected", c.logger.Args(
		"source", c.src.Name(),
		"text", text,
		"pages", pages,
		"found", result.Found,
		"processed", result.Processed,
		"average", result.AverageSalary,
	))

	return result, nil
}
