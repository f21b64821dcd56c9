package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// DailyTrend plots a per-day seconds series, converted to hours, as an
// ASCII line chart suitable for embedding in a markdown code block.
func DailyTrend(seconds []float64, caption string) string {
	if len(seconds) < 2 {
		return ""
	}
	hours := make([]float64, len(seconds))
	for i, s := range seconds {
		hours[i] = s / 3600
	}
	return asciigraph.Plot(hours,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}

// BreakdownBars renders horizontal bars for a set of labelled values, scaled
// to the largest value.
func BreakdownBars(labels []string, values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}

	barWidth := width - maxLabelLen - 12
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}

		line := fmt.Sprintf("%*s │%s %s", maxLabelLen, label,
			strings.Repeat("█", barLen), FormatTimeReadable(v))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
