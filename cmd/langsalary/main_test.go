package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	hh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"found": 1234, "pages": 0, "items": [
			{"id": "1", "name": "Go", "salary": {"from": 200000, "to": 300000, "currency": "RUR"}}
		]}`))
	}))
	t.Cleanup(hh.Close)

	sj := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 56, "more": false, "objects": [
			{"id": 7, "profession": "Go", "payment_from": 100000, "payment_to": 0, "payment": 1, "currency": "rub"}
		]}`))
	}))
	t.Cleanup(sj.Close)

	cfg := config.Default()
	cfg.Languages = []string{"Go"}
	cfg.HeadHunter.BaseURL = hh.URL
	cfg.SuperJob.BaseURL = sj.URL
	cfg.SuperJob.SecretKey = "v3.r.test"
	return cfg
}

func TestRunPrintsTablesInSourceOrder(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), &out, nil, ui.DiscardLogger())
	require.NoError(t, err)

	text := out.String()
	sjAt := strings.Index(text, "SuperJob Moscow")
	hhAt := strings.Index(text, "HeadHunter Moscow")
	require.NotEqual(t, -1, sjAt)
	require.NotEqual(t, -1, hhAt)
	assert.Less(t, sjAt, hhAt)

	assert.Contains(t, text, "1,234")
	assert.Contains(t, text, "250,000")
	assert.Contains(t, text, "120,000")
}

func TestRunSingleSource(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	cfg := testConfig(t)
	require.NoError(t, selectSource(cfg, config.SourceHeadHunter))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out, nil, ui.DiscardLogger()))
	assert.Contains(t, out.String(), "HeadHunter Moscow")
	assert.NotContains(t, out.String(), "SuperJob Moscow")
}

func TestRunFailsOnProviderError(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	cfg := testConfig(t)
	cfg.SuperJob.BaseURL = broken.URL

	var out bytes.Buffer
	err := run(context.Background(), cfg, &out, nil, ui.DiscardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SuperJob Moscow")
	assert.Empty(t, out.String())
}

func TestSelectSource(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []string
		wantErr  bool
	}{
		{name: "All", source: "all", expected: []string{config.SourceSuperJob, config.SourceHeadHunter}},
		{name: "Empty", source: "", expected: []string{config.SourceSuperJob, config.SourceHeadHunter}},
		{name: "HeadHunter", source: "headhunter", expected: []string{config.SourceHeadHunter}},
		{name: "SuperJob", source: "superjob", expected: []string{config.SourceSuperJob}},
		{name: "Unknown", source: "linkedin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := selectSource(cfg, tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Sources)
		})
	}
}

func TestBuildSourcesRejectsUnknown(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = []string{"monster"}
	_, err := buildSources(cfg, ui.DiscardLogger())
	assert.Error(t, err)
}
