package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceHeadHunter = "headhunter"
	SourceSuperJob   = "superjob"

	// DefaultPath is read when no explicit config file is given. It is optional.
	DefaultPath = "config.yaml"

	superJobKeyEnv = "SUPERJOB_SECRET_KEY"
	maxPerPage     = 100
)

// AppConfig represents the application configuration
type AppConfig struct {
	Languages    []string         `yaml:"languages"`
	SearchPrefix string           `yaml:"search_prefix"`
	Sources      []string         `yaml:"sources"`
	PerPage      int              `yaml:"per_page"`
	MaxPages     int              `yaml:"max_pages"`
	Timeout      time.Duration    `yaml:"timeout"`
	UserAgent    string           `yaml:"user_agent"`
	HeadHunter   HeadHunterConfig `yaml:"headhunter"`
	SuperJob     SuperJobConfig   `yaml:"superjob"`
}

type HeadHunterConfig struct {
	BaseURL        string `yaml:"base_url"`
	Title          string `yaml:"title"`
	Specialization string `yaml:"specialization"`
	Area           string `yaml:"area"`
	PeriodDays     int    `yaml:"period_days"`
	Currency       string `yaml:"currency"`
}

type SuperJobConfig struct {
	BaseURL    string `yaml:"base_url"`
	Title      string `yaml:"title"`
	Town       int    `yaml:"town"`
	Catalogues int    `yaml:"catalogues"`
	Currency   string `yaml:"currency"`
	// SecretKey only ever comes from SUPERJOB_SECRET_KEY.
	SecretKey string `yaml:"-"`
}

// Default returns the built-in configuration: Moscow, the last 30 days, the
// "programming" specialization on both boards.
func Default() *AppConfig {
	return &AppConfig{
		Languages:    []string{"Javascript", "Java", "Python", "Ruby", "PHP", "C++", "C#", "C", "Go"},
		SearchPrefix: "Программист",
		Sources:      []string{SourceSuperJob, SourceHeadHunter},
		PerPage:      100,
		MaxPages:     50,
		Timeout:      30 * time.Second,
		HeadHunter: HeadHunterConfig{
			BaseURL:        "https://api.hh.ru/vacancies",
			Title:          "HeadHunter Moscow",
			Specialization: "1.221",
			Area:           "1",
			PeriodDays:     30,
			Currency:       "RUR",
		},
		SuperJob: SuperJobConfig{
			BaseURL:    "https://api.superjob.ru/2.0/vacancies/",
			Title:      "SuperJob Moscow",
			Town:       4,
			Catalogues: 48,
			Currency:   "rub",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment (.env is loaded first if present). An empty path means
// DefaultPath, which may be missing; an explicit path must exist.
// Callers apply their own overrides and then call Validate.
func Load(path string) (*AppConfig, error) {
	// A missing .env is fine, the key may already be in the environment.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if key := os.Getenv(superJobKeyEnv); key != "" {
		cfg.SuperJob.SecretKey = key
	}

	return cfg, nil
}

// Validate checks the configuration for values the providers would reject
func (c *AppConfig) Validate() error {
	var errs []error

	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("at least one language is required"))
	}
	for _, lang := range c.Languages {
		if strings.TrimSpace(lang) == "" {
			errs = append(errs, errors.New("language names must not be empty"))
			break
		}
	}
	if c.PerPage < 1 || c.PerPage > maxPerPage {
		errs = append(errs, fmt.Errorf("per_page must be between 1 and %d, got %d", maxPerPage, c.PerPage))
	}
	if c.MaxPages < 1 {
		errs = append(errs, fmt.Errorf("max_pages must be positive, got %d", c.MaxPages))
	}
	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("at least one source is required"))
	}
	for _, src := range c.Sources {
		if !IsValidSource(src) {
			errs = append(errs, fmt.Errorf("unknown source %q", src))
		}
	}
	if c.Enabled(SourceSuperJob) && c.SuperJob.SecretKey == "" {
		errs = append(errs, fmt.Errorf("%s is required for the %s source", superJobKeyEnv, SourceSuperJob))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Enabled reports whether the named source is part of the run.
func (c *AppConfig) Enabled(source string) bool {
	return slices.Contains(c.Sources, source)
}

// LanguageList returns a copy of the configured languages.
func (c *AppConfig) LanguageList() []string {
	return slices.Clone(c.Languages)
}

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	switch source {
	case SourceHeadHunter, SourceSuperJob:
		return true
	}
	return false
}
