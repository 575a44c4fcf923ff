package logic

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats insight numbers with thousands separators.
var printer = message.NewPrinter(language.English)

func plural(n int, singular, many string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, singular)
	}
	return printer.Sprintf("%d %s", n, many)
}

func metricNoun(metric string, n int) string {
	switch metric {
	case MetricWins:
		return plural(n, "win", "wins")
	case MetricGoals:
		return plural(n, "goal", "goals")
	default:
		return plural(n, "title", "titles")
	}
}
