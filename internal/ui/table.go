package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// TableData converts a report into rows of cells, header first.
func TableData(table *models.ReportTable) pterm.TableData {
	data := make(pterm.TableData, 0, len(table.Rows)+1)
	data = append(data, table.Header[:])

	for _, row := range table.Rows {
		data = append(data, []string{
			row.Language,
			utils.FormatCount(row.Found),
			utils.FormatCount(row.Processed),
			ColorizeSalary(row.AverageSalary, row.HasAverage()),
		})
	}

	return data
}

// RenderTable renders a report as a boxed table titled with the provider name
func RenderTable(table *models.ReportTable) (string, error) {
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithRightAlignment().
		WithData(TableData(table)).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render table %q: %w", table.Title, err)
	}

	return pterm.DefaultBox.WithTitle(pterm.Bold.Sprint(table.Title)).Sprint(rendered), nil
}
