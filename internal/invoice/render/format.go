package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/faktur-app/faktur/internal/money"
)

const unresolvedLabel = "N/A"

// formatAmount and formatDate are the only formatting paths into both
// renderers; they delegate to the shared money package.
func formatAmount(amount int64, company CompanyView) string {
	return money.Format(amount, company.Currency, company.Language)
}

func formatDate(value time.Time, company CompanyView) string {
	return money.FormatDate(value, company.Language)
}

func formatTaxLabel(taxPercent float64) string {
	return "Tax (" + strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", taxPercent), "0"), ".") + "%)"
}

func customerName(customer CustomerView) string {
	if !customer.Resolved || strings.TrimSpace(customer.Name) == "" {
		return unresolvedLabel
	}
	return customer.Name
}

// noteLines splits free-text notes into render lines, one per
// newline-delimited paragraph.
func noteLines(notes string) []string {
	if strings.TrimSpace(notes) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(notes, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}
