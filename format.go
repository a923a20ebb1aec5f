package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var dutchPrinter = message.NewPrinter(language.Dutch)

// formatCurrency renders an amount as whole euros with Dutch grouping
// ("€ 14.200"). The sign is applied to the formatted absolute value, so a
// negative amount reads "-€ 14.200" and zero is non-negative.
func formatCurrency(amount float64) string {
	formatted := dutchPrinter.Sprintf("€ %v",
		number.Decimal(math.Abs(amount), number.MaxFractionDigits(0)))
	if amount < 0 {
		return "-" + formatted
	}
	return formatted
}

// benchmarkGap is the displayed utilization spread. Values are trusted as
// provided; the backend owns the [0,100] contract.
func benchmarkGap(you, competitors float64) float64 {
	return math.Abs(competitors - you)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func formatFileSize(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

// formatAnalyzedAt turns the backend's RFC3339 timestamp into a local display
// string, falling back to the raw value when it does not parse.
func formatAnalyzedAt(analyzedAt string) string {
	parsed, err := time.Parse(time.RFC3339, analyzedAt)
	if err != nil {
		return analyzedAt
	}
	return parsed.Local().Format("2 Jan 2006 15:04")
}
