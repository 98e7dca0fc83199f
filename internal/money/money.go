// Package money formats whole-unit currency amounts and invoice dates.
// Every rendering surface (summary, PDF, image) goes through these
// functions so displayed numbers never diverge between surfaces.
package money

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts are whole currency units: there are no fractional subunits in
// this domain, so values are grouped integers with a symbol prefix.

var printers = map[string]*message.Printer{
	"en": message.NewPrinter(language.English),
	"id": message.NewPrinter(language.Indonesian),
}

var monthNames = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"id": {"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
}

const defaultLocale = "en"

// Format renders an amount with thousands grouping and a currency symbol
// prefix, e.g. Format(10600000, "Rp", "id") == "Rp 10.600.000".
func Format(amount int64, symbol, locale string) string {
	printer, ok := printers[normalizeLocale(locale)]
	if !ok {
		printer = printers[defaultLocale]
	}
	grouped := printer.Sprintf("%d", amount)
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return grouped
	}
	return symbol + " " + grouped
}

// FormatDate renders a date as dd-Mon-yyyy with the month name localized,
// e.g. 15-Jul-2024.
func FormatDate(value time.Time, locale string) string {
	if value.IsZero() {
		return "-"
	}
	names, ok := monthNames[normalizeLocale(locale)]
	if !ok {
		names = monthNames[defaultLocale]
	}
	return fmt.Sprintf("%02d-%s-%d", value.Day(), names[value.Month()-1], value.Year())
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	return locale
}
