package scraper

import (
	"context"
	"net/http"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
)

const defaultPerPage = 100

// Source is a paginated vacancy search API.
type Source interface {
	// Name is the short identifier used in config and logs, e.g. "headhunter".
	Name() string
	// Title is printed above the report table.
	Title() string
	// FetchPage requests one 0-indexed page of vacancies matching text. The
	// returned page has More set according to the provider's own convention.
	FetchPage(ctx context.Context, text string, page int) (*models.Page, error)
	// PredictSalary estimates the monthly salary of a vacancy in the target
	// currency. ok is false when the vacancy carries no usable salary.
	PredictSalary(v models.Vacancy) (estimate int, ok bool)
}

// Option configures a Source.
type Option func(*options)

type options struct {
	httpClient *http.Client
	perPage    int
	userAgent  string
	logger     *pterm.Logger
}

func defaultOptions() options {
	return options{
		httpClient: client.CreateHTTPClient(0),
		perPage:    defaultPerPage,
		userAgent:  client.DefaultUserAgent,
		logger:     ui.DiscardLogger(),
	}
}

// WithHTTPClient sets the client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithPerPage sets the page size requested from the provider.
func WithPerPage(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.perPage = n
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithLogger sets the logger for per-page debug output.
func WithLogger(l *pterm.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
