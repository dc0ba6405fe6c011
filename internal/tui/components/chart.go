package components

import (
	"fmt"
	"math"
	"strings"

	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Mark flags a bucket position that carries one or more event annotations.
// The chart draws a ▲ under the bucket; the caller renders the legend.
type Mark struct {
	Index int
	Label string
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// chartLayout holds the shared geometry of bar and line charts.
type chartLayout struct {
	values       []float64
	labels       []string
	marked       map[int]bool // column index -> has annotation
	ceiling      float64
	tickStep     float64
	numIntervals int
	chartH       int
	yLabelW      int
	barW         int
	gap          int
}

// tickLabels returns the Y-axis tick labels keyed by chart row.
func (l chartLayout) tickLabels() map[int]string {
	labels := make(map[int]string, l.numIntervals)
	rowsPerTick := l.chartH / l.numIntervals
	for i := 1; i <= l.numIntervals; i++ {
		labels[i*rowsPerTick] = formatChartLabel(l.tickStep * float64(i))
	}
	return labels
}

// buildLayout computes axis geometry and downsamples when the series is
// wider than the chart area, remapping annotation marks onto the sampled
// columns so they stay anchored to (approximately) the right bucket.
func buildLayout(values []float64, labels []string, marks []Mark, width, height int) chartLayout {
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(maxVal / tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(values)
	marked := make(map[int]bool, len(marks))
	for _, m := range marks {
		if m.Index >= 0 && m.Index < n {
			marked[m.Index] = true
		}
	}

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := 2
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else if n == 1 {
		barW = chartW
	}
	if barW < 2 && n > 1 {
		maxN := (chartW + 1) / 3
		if maxN < 2 {
			maxN = 2
		}
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (maxN - 1)
			sampled[i] = values[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		remapped := make(map[int]bool, len(marked))
		for idx := range marked {
			remapped[idx*(maxN-1)/(n-1)] = true
		}
		values = sampled
		labels = sampledLabels
		marked = remapped
		barW = 2
	}
	if barW > 6 {
		barW = 6
	}

	return chartLayout{
		values:       values,
		labels:       labels,
		marked:       marked,
		ceiling:      ceiling,
		tickStep:     tickStep,
		numIntervals: numIntervals,
		chartH:       chartH,
		yLabelW:      yLabelW,
		barW:         barW,
		gap:          gap,
	}
}

func (l chartLayout) axisLen() int {
	n := len(l.values)
	return n*l.barW + max(0, n-1)*l.gap
}

// BarChart renders a bar chart with gradient coloring and optional
// annotation marks under the axis.
func BarChart(values []float64, labels []string, marks []Mark, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active
	l := buildLayout(values, labels, marks, width, height)
	values = l.values

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	tickLabels := l.tickLabels()

	var b strings.Builder

	for row := l.chartH; row >= 1; row-- {
		rowTop := l.ceiling * float64(row) / float64(l.chartH)
		rowBottom := l.ceiling * float64(row-1) / float64(l.chartH)
		rowPct := float64(row) / float64(l.chartH)

		var barColor lipgloss.Color
		switch {
		case rowPct > 0.8:
			barColor = t.AccentBright
		case rowPct > 0.5:
			barColor = color
		default:
			barColor = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", l.yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && l.gap > 0 {
				b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", l.gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", l.barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), l.barW)))
			default:
				b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", l.barW)))
			}
		}
		b.WriteString("\n")
	}

	renderAxis(&b, l, axisStyle)
	renderMarkRow(&b, l)
	renderXLabels(&b, l)

	return b.String()
}

// LineChart renders the series as a point-per-bucket line with the same
// axes, marks, and labels as BarChart.
func LineChart(values []float64, labels []string, marks []Mark, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active
	l := buildLayout(values, labels, marks, width, height)
	values = l.values
	n := len(values)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pointStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	connStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	// Row each point lands on (1..chartH; 0 means on the axis)
	levels := make([]int, n)
	for i, v := range values {
		lv := int(math.Round(v / l.ceiling * float64(l.chartH)))
		if lv > l.chartH {
			lv = l.chartH
		}
		if lv < 0 {
			lv = 0
		}
		levels[i] = lv
	}

	tickLabels := l.tickLabels()

	var b strings.Builder

	for row := l.chartH; row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", l.yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := range values {
			if i > 0 && l.gap > 0 {
				// Connector in the gap when the line passes through this row
				lo, hi := levels[i-1], levels[i]
				if lo > hi {
					lo, hi = hi, lo
				}
				if row >= lo && row <= hi && lo != hi {
					b.WriteString(connStyle.Render(strings.Repeat("·", l.gap)))
				} else {
					b.WriteString(blankStyle.Render(strings.Repeat(" ", l.gap)))
				}
			}

			cell := strings.Repeat(" ", l.barW)
			switch {
			case levels[i] == row:
				mid := (l.barW - 1) / 2
				cell = strings.Repeat(" ", mid) + "●" + strings.Repeat(" ", l.barW-mid-1)
				b.WriteString(pointStyle.Render(cell))
			default:
				b.WriteString(blankStyle.Render(cell))
			}
		}
		b.WriteString("\n")
	}

	renderAxis(&b, l, axisStyle)
	renderMarkRow(&b, l)
	renderXLabels(&b, l)

	return b.String()
}

func renderAxis(b *strings.Builder, l chartLayout, axisStyle lipgloss.Style) {
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", l.yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", l.axisLen())))
}

// renderMarkRow draws a ▲ beneath every annotated bucket.
func renderMarkRow(b *strings.Builder, l chartLayout) {
	if len(l.marked) == 0 {
		return
	}
	t := theme.Active
	axisLen := l.axisLen()

	buf := make([]rune, axisLen)
	for i := range buf {
		buf[i] = ' '
	}
	for idx := range l.marked {
		pos := idx*(l.barW+l.gap) + (l.barW-1)/2
		if pos >= 0 && pos < axisLen {
			buf[pos] = '▲'
		}
	}

	markStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Bold(true)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", l.yLabelW+1)))
	b.WriteString(markStyle.Render(strings.TrimRight(string(buf), " ")))
}

func renderXLabels(b *strings.Builder, l chartLayout) {
	t := theme.Active
	n := len(l.values)
	axisLen := l.axisLen()
	if len(l.labels) != n || n == 0 {
		return
	}

	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}

	minSpacing := 9
	labelStep := max(1, (n*minSpacing)/(axisLen+1))

	lastEnd := -1
	for i := 0; i < n; i += labelStep {
		pos := i * (l.barW + l.gap)
		lbl := l.labels[i]
		end := pos + len(lbl)
		if pos <= lastEnd {
			continue
		}
		if end > axisLen {
			end = axisLen
			if end-pos < 3 {
				continue
			}
			lbl = lbl[:end-pos]
		}
		copy(buf[pos:end], lbl)
		lastEnd = end + 1
	}
	if n > 1 {
		lbl := l.labels[n-1]
		pos := (n - 1) * (l.barW + l.gap)
		end := pos + len(lbl)
		if end > axisLen {
			pos = axisLen - len(lbl)
			end = axisLen
		}
		if pos >= 0 && pos > lastEnd {
			for j := pos; j < end; j++ {
				buf[j] = ' '
			}
			copy(buf[pos:end], lbl)
		}
	}

	b.WriteString("\n")
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", l.yLabelW+1)))
	b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
