package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// HeadHunterResponse represents the response from the hh.ru vacancy search API.
// The pointer fields are required; a nil one means the response is malformed.
type HeadHunterResponse struct {
	Items *[]HeadHunterVacancy `json:"items"`
	Found *int                 `json:"found"`
	Pages *int                 `json:"pages"`
}

// HeadHunterVacancy represents a vacancy from the hh.ru search results
type HeadHunterVacancy struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AlternateURL string `json:"alternate_url"`
	Employer     *struct {
		Name string `json:"name"`
	} `json:"employer"`
	Salary  *models.Salary `json:"salary"`
	Snippet struct {
		Requirement    *string `json:"requirement"`
		Responsibility *string `json:"responsibility"`
	} `json:"snippet"`
}

// HeadHunter implements Source for api.hh.ru.
type HeadHunter struct {
	cfg  config.HeadHunterConfig
	opts options
}

// NewHeadHunter creates a HeadHunter source.
func NewHeadHunter(cfg config.HeadHunterConfig, opts ...Option) *HeadHunter {
	return &HeadHunter{cfg: cfg, opts: applyOptions(opts)}
}

func (h *HeadHunter) Name() string  { return config.SourceHeadHunter }
func (h *HeadHunter) Title() string { return h.cfg.Title }

// FetchPage fetches one page of search results. hh.ru reports the total page
// count; paging continues while the current index is below it, so pages
// 0 through Pages are requested.
func (h *HeadHunter) FetchPage(ctx context.Context, text string, page int) (*models.Page, error) {
	query := url.Values{}
	query.Set("text", text)
	query.Set("specialization", h.cfg.Specialization)
	query.Set("area", h.cfg.Area)
	query.Set("period", strconv.Itoa(h.cfg.PeriodDays))
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(h.opts.perPage))

	headers := http.Header{}
	headers.Set("User-Agent", h.opts.userAgent)

	var resp HeadHunterResponse
	if err := client.GetJSON(ctx, h.opts.httpClient, h.cfg.BaseURL, query, headers, &resp); err != nil {
		return nil, fmt.Errorf("headhunter: page %d: %w", page, err)
	}

	if resp.Items == nil || resp.Found == nil || resp.Pages == nil {
		return nil, fmt.Errorf("headhunter: page %d: missing items, found or pages: %w", page, client.ErrMalformedResponse)
	}

	result := &models.Page{
		Index:     page,
		Vacancies: make([]models.Vacancy, 0, len(*resp.Items)),
		Found:     *resp.Found,
		More:      page < *resp.Pages,
	}
	for _, item := range *resp.Items {
		result.Vacancies = append(result.Vacancies, item.toVacancy())
	}

	h.opts.logger.Debug("fetched page", h.opts.logger.Args(
		"source", h.Name(),
		"text", text,
		"page", page,
		"pages", *resp.Pages,
		"vacancies", len(result.Vacancies),
	))

	return result, nil
}

// PredictSalary returns an estimate only for vacancies paid in the configured
// currency. A zero bound counts as a real value.
func (h *HeadHunter) PredictSalary(v models.Vacancy) (int, bool) {
	if v.Salary == nil {
		return 0, false
	}
	if v.Salary.Currency != h.cfg.Currency {
		return 0, false
	}
	return salary.Predict(v.Salary.From, v.Salary.To)
}

func (v HeadHunterVacancy) toVacancy() models.Vacancy {
	vacancy := models.Vacancy{
		ID:     v.ID,
		Name:   v.Name,
		URL:    v.AlternateURL,
		Salary: v.Salary,
		Source: config.SourceHeadHunter,
	}
	if v.Employer != nil {
		vacancy.Employer = v.Employer.Name
	}

	var parts []string
	for _, s := range []*string{v.Snippet.Requirement, v.Snippet.Responsibility} {
		if s != nil && *s != "" {
			parts = append(parts, utils.StripMarkup(*s))
		}
	}
	vacancy.Snippet = strings.Join(parts, " ")

	return vacancy
}
