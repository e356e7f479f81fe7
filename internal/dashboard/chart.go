package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockdash/internal/provider"
	"stockdash/internal/theme"
)

// Block elements for sub-character vertical resolution (1/8 to 8/8).
var blockChars = [9]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderChart draws a close-price series as a filled block-element area
// chart. Columns are colored against the period-start close: gained days in
// the up color, lost days in the down color. Nil closes (non-trading gaps)
// are bridged with the previous value so the area stays contiguous.
func renderChart(series provider.Series, width, height int, t theme.Theme) string {
	data := flattenCloses(series.Closes)
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	baseline := data[0]

	cols := downsample(data, width)

	minVal, maxVal := cols[0], cols[0]
	for _, v := range cols {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	valRange := maxVal - minVal
	if valRange == 0 {
		valRange = 1
	}

	// Scale each column to 1..height*8 sub-cell levels; at least 1 so every
	// column stays visible.
	totalLevels := height * 8
	scaled := make([]int, len(cols))
	for i, v := range cols {
		s := int((v-minVal)/valRange*float64(totalLevels-1)) + 1
		scaled[i] = min(s, totalLevels)
	}

	upStyle := lipgloss.NewStyle().Foreground(t.Up)
	downStyle := lipgloss.NewStyle().Foreground(t.Down)

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		rowBottom := (height - 1 - row) * 8
		var sb strings.Builder
		for col := range scaled {
			fill := scaled[col] - rowBottom
			if fill <= 0 {
				sb.WriteRune(' ')
				continue
			}
			fill = min(fill, 8)
			style := upStyle
			if cols[col] < baseline {
				style = downStyle
			}
			sb.WriteString(style.Render(string(blockChars[fill])))
		}
		rows = append(rows, sb.String())
	}

	// Trim fully empty top rows.
	start := 0
	for start < len(rows) && strings.TrimSpace(rows[start]) == "" {
		start++
	}
	return strings.Join(rows[start:], "\n")
}

// flattenCloses drops leading nils and carries the last seen value across
// interior gaps.
func flattenCloses(closes []*float64) []float64 {
	out := make([]float64, 0, len(closes))
	var last *float64
	for _, c := range closes {
		if c != nil {
			last = c
		}
		if last != nil {
			out = append(out, *last)
		}
	}
	return out
}

// downsample reduces data to at most n points by averaging buckets.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}
	out := make([]float64, n)
	bucket := float64(len(data)) / float64(n)
	for i := 0; i < n; i++ {
		start := int(float64(i) * bucket)
		end := min(int(float64(i+1)*bucket), len(data))
		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
