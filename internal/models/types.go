package models

// Salary is the raw salary block of a vacancy as the provider reported it.
// Bounds are nil when the provider sent null.
type Salary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// Vacancy represents one job posting returned by a provider search
type Vacancy struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Employer string  `json:"employer"`
	URL      string  `json:"url"`
	Snippet  string  `json:"snippet,omitempty"`
	Salary   *Salary `json:"salary,omitempty"`
	Source   string  `json:"source"`
}

// Page is a single batch of vacancies from one paginated API call
type Page struct {
	Index     int
	Vacancies []Vacancy
	// Found is the provider's total match count for the query.
	Found int
	// More is false once the provider signals there is nothing left to fetch.
	More bool
}

// LanguageStats holds the aggregated figures for one programming language
type LanguageStats struct {
	Language      string `json:"language"`
	Found         int    `json:"vacancies_found"`
	Processed     int    `json:"vacancies_processed"`
	AverageSalary int    `json:"average_salary"`
}

// HasAverage reports whether at least one vacancy had a usable salary.
func (s LanguageStats) HasAverage() bool {
	return s.Processed > 0
}

// ReportHeader is the fixed header row of every report table.
var ReportHeader = [4]string{"Language", "Vacancies found", "Vacancies processed", "Average salary"}

// ReportTable is the per-provider summary printed at the end of a run
type ReportTable struct {
	Title  string
	Header [4]string
	Rows   []LanguageStats
}
