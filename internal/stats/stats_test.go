package stats

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
)

func ptr(v float64) *float64 { return &v }

func rub(from, to *float64) *models.Salary {
	return &models.Salary{From: from, To: to, Currency: "RUR"}
}

// fakeSource serves scripted pages and prices vacancies the way hh.ru does.
type fakeSource struct {
	pages []*models.Page
	fail  map[int]error
	calls int
}

func (f *fakeSource) Name() string  { return "fake" }
func (f *fakeSource) Title() string { return "Fake" }

func (f *fakeSource) FetchPage(_ context.Context, _ string, page int) (*models.Page, error) {
	f.calls++
	if err, ok := f.fail[page]; ok {
		return nil, err
	}
	if page >= len(f.pages) {
		return nil, fmt.Errorf("unexpected page %d", page)
	}
	return f.pages[page], nil
}

func (f *fakeSource) PredictSalary(v models.Vacancy) (int, bool) {
	return scraper.NewHeadHunter(config.Default().HeadHunter).PredictSalary(v)
}

// twoPageSource has three roubles salaries (150000, 80000, 240000) among
// six vacancies.
func twoPageSource() *fakeSource {
	return &fakeSource{pages: []*models.Page{
		{
			Index: 0, Found: 6, More: true,
			Vacancies: []models.Vacancy{
				{Name: "a", Salary: rub(ptr(100000), ptr(200000))},
				{Name: "b", Salary: &models.Salary{From: ptr(5000), Currency: "USD"}},
				{Name: "c", Salary: nil},
			},
		},
		{
			Index: 1, Found: 6, More: false,
			Vacancies: []models.Vacancy{
				{Name: "d", Salary: rub(nil, ptr(100000))},
				{Name: "e", Salary: rub(ptr(200000), nil)},
				{Name: "f", Salary: &models.Salary{From: ptr(1000), To: ptr(2000), Currency: "EUR"}},
			},
		},
	}}
}

func TestCollectTwoPages(t *testing.T) {
	src := twoPageSource()

	got, err := NewCollector(src, 10, nil).Collect(context.Background(), "Программист Go")
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 6, got.Found)
	assert.Equal(t, 3, got.Processed)
	// (150000 + 80000 + 240000) / 3
	assert.Equal(t, 156666, got.AverageSalary)
	assert.True(t, got.HasAverage())
}

func TestCollectNoKnownSalaries(t *testing.T) {
	src := &fakeSource{pages: []*models.Page{
		{Found: 2, More: false, Vacancies: []models.Vacancy{
			{Salary: nil},
			{Salary: &models.Salary{From: ptr(10), Currency: "USD"}},
		}},
	}}

	got, err := NewCollector(src, 10, nil).Collect(context.Background(), "Программист Ruby")
	require.NoError(t, err)

	assert.Equal(t, 2, got.Found)
	assert.Equal(t, 0, got.Processed)
	assert.Equal(t, 0, got.AverageSalary)
	assert.False(t, got.HasAverage())
}

func TestCollectPropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	src := twoPageSource()
	src.fail = map[int]error{1: boom}

	_, err := NewCollector(src, 10, nil).Collect(context.Background(), "Go")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, src.calls)
}

func TestPagesLimit(t *testing.T) {
	endless := &fakeSource{}
	for i := 0; i < 5; i++ {
		endless.pages = append(endless.pages, &models.Page{Index: i, More: true})
	}

	var seen int
	var lastErr error
	for page, err := range Pages(context.Background(), endless, "Go", 3) {
		if err != nil {
			lastErr = err
			break
		}
		seen++
		assert.Equal(t, seen-1, page.Index)
	}

	assert.Equal(t, 3, seen)
	assert.Equal(t, 3, endless.calls)
	assert.ErrorIs(t, lastErr, ErrPageLimit)
}

func TestPagesStopsWhenConsumerBreaks(t *testing.T) {
	src := twoPageSource()
	for range Pages(context.Background(), src, "Go", 10) {
		break
	}
	assert.Equal(t, 1, src.calls)
}

func TestHeadHunterFetchesPagesPlusOne(t *testing.T) {
	const totalPages = 3
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprintf(w, `{"found": 4, "pages": %d, "items": [
			{"id": "%d", "name": "Go", "salary": {"from": 100, "to": 300, "currency": "RUR"}}
		]}`, totalPages, page)
	}))
	defer srv.Close()

	cfg := config.Default().HeadHunter
	cfg.BaseURL = srv.URL
	hh := scraper.NewHeadHunter(cfg, scraper.WithHTTPClient(srv.Client()))

	got, err := NewCollector(hh, 50, nil).Collect(context.Background(), "Программист Go")
	require.NoError(t, err)

	assert.Equal(t, int32(totalPages+1), requests.Load())
	assert.Equal(t, 4, got.Found)
	assert.Equal(t, totalPages+1, got.Processed)
	assert.Equal(t, 200, got.AverageSalary)
}

func TestSuperJobStopsOnFirstMoreFalse(t *testing.T) {
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		more := page < 1
		fmt.Fprintf(w, `{"total": 2, "more": %t, "objects": [
			{"id": %d, "profession": "Go", "payment_from": 0, "payment_to": 500, "payment": 1, "currency": "rub"}
		]}`, more, page)
	}))
	defer srv.Close()

	cfg := config.Default().SuperJob
	cfg.BaseURL = srv.URL
	cfg.SecretKey = "key"
	sj := scraper.NewSuperJob(cfg, scraper.WithHTTPClient(srv.Client()))

	got, err := NewCollector(sj, 50, nil).Collect(context.Background(), "Программист Go")
	require.NoError(t, err)

	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, models.LanguageStats{Found: 2, Processed: 2, AverageSalary: 400}, got)
}

func TestCollectStatusErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := config.Default().HeadHunter
	cfg.BaseURL = srv.URL
	hh := scraper.NewHeadHunter(cfg, scraper.WithHTTPClient(srv.Client()))

	_, err := NewCollector(hh, 50, nil).Collect(context.Background(), "Go")
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}
