package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const superJobKeyHeader = "X-Api-App-Id"

// SuperJobResponse represents the response from the SuperJob vacancy search API.
// The pointer fields are required.
type SuperJobResponse struct {
	Objects *[]SuperJobVacancy `json:"objects"`
	Total   *int               `json:"total"`
	More    *bool              `json:"more"`
}

// SuperJobVacancy represents a vacancy from the SuperJob search results
type SuperJobVacancy struct {
	ID          int64    `json:"id"`
	Profession  string   `json:"profession"`
	FirmName    string   `json:"firm_name"`
	Link        string   `json:"link"`
	Candidat    string   `json:"candidat"`
	PaymentFrom *float64 `json:"payment_from"`
	PaymentTo   *float64 `json:"payment_to"`
	Payment     *float64 `json:"payment"`
	Currency    string   `json:"currency"`
}

// SuperJob implements Source for api.superjob.ru.
type SuperJob struct {
	cfg  config.SuperJobConfig
	opts options
}

// NewSuperJob creates a SuperJob source. cfg.SecretKey is sent with every request.
func NewSuperJob(cfg config.SuperJobConfig, opts ...Option) *SuperJob {
	return &SuperJob{cfg: cfg, opts: applyOptions(opts)}
}

func (s *SuperJob) Name() string  { return config.SourceSuperJob }
func (s *SuperJob) Title() string { return s.cfg.Title }

// FetchPage fetches one page of search results. SuperJob tells us directly
// whether another page exists.
func (s *SuperJob) FetchPage(ctx context.Context, text string, page int) (*models.Page, error) {
	query := url.Values{}
	query.Set("town", strconv.Itoa(s.cfg.Town))
	query.Set("catalogues", strconv.Itoa(s.cfg.Catalogues))
	query.Set("keyword", text)
	query.Set("page", strconv.Itoa(page))
	query.Set("count", strconv.Itoa(s.opts.perPage))

	headers := http.Header{}
	headers.Set(superJobKeyHeader, s.cfg.SecretKey)
	headers.Set("User-Agent", s.opts.userAgent)

	var resp SuperJobResponse
	if err := client.GetJSON(ctx, s.opts.httpClient, s.cfg.BaseURL, query, headers, &resp); err != nil {
		return nil, fmt.Errorf("superjob: page %d: %w", page, err)
	}

	if resp.Objects == nil || resp.Total == nil || resp.More == nil {
		return nil, fmt.Errorf("superjob: page %d: missing objects, total or more: %w", page, client.ErrMalformedResponse)
	}

	result := &models.Page{
		Index:     page,
		Vacancies: make([]models.Vacancy, 0, len(*resp.Objects)),
		Found:     *resp.Total,
		More:      *resp.More,
	}
	for _, obj := range *resp.Objects {
		result.Vacancies = append(result.Vacancies, obj.toVacancy())
	}

	s.opts.logger.Debug("fetched page", s.opts.logger.Args(
		"source", s.Name(),
		"text", text,
		"page", page,
		"more", *resp.More,
		"vacancies", len(result.Vacancies),
	))

	return result, nil
}

// PredictSalary returns an estimate only for vacancies with a payment in the
// configured currency. SuperJob sends 0 for an unset bound, so zero means absent.
func (s *SuperJob) PredictSalary(v models.Vacancy) (int, bool) {
	if v.Salary == nil {
		return 0, false
	}
	if v.Salary.Currency != s.cfg.Currency {
		return 0, false
	}
	return salary.Predict(nonZero(v.Salary.From), nonZero(v.Salary.To))
}

func nonZero(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func (v SuperJobVacancy) toVacancy() models.Vacancy {
	vacancy := models.Vacancy{
		ID:       strconv.FormatInt(v.ID, 10),
		Name:     v.Profession,
		Employer: v.FirmName,
		URL:      v.Link,
		Snippet:  utils.StripMarkup(v.Candidat),
		Source:   config.SourceSuperJob,
	}
	// a null payment means the employer did not publish a salary at all
	if v.Payment != nil {
		vacancy.Salary = &models.Salary{
			From:     v.PaymentFrom,
			To:       v.PaymentTo,
			Currency: v.Currency,
		}
	}
	return vacancy
}
