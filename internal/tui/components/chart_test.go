package components

import (
	"strings"
	"testing"

	"fedigraph/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestSparklineLength(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := []float64{1, 5, 3, 8, 2}
	plain := stripANSI(Sparkline(values, theme.Active.Accent))
	if got := len([]rune(plain)); got != len(values) {
		t.Errorf("Sparkline width = %d, want %d", got, len(values))
	}

	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("Sparkline(nil) should be empty")
	}
}

func TestBarChartMarkRow(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := []float64{10, 20, 30, 40}
	labels := []string{"2025-01", "2025-02", "2025-03", "2025-04"}
	marks := []Mark{{Index: 2, Label: "Event"}}

	out := BarChart(values, labels, marks, theme.Active.Accent, 60, 12)
	plain := stripANSI(out)

	if !strings.Contains(plain, "▲") {
		t.Error("annotated chart should contain a ▲ mark")
	}
	if !strings.Contains(plain, "2025-01") {
		t.Error("chart should contain the first x label")
	}
}

func TestBarChartNoMarkRowWithoutMarks(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := BarChart([]float64{10, 20}, []string{"a", "b"}, nil, theme.Active.Accent, 60, 12)
	if strings.Contains(stripANSI(out), "▲") {
		t.Error("chart without annotations should have no ▲ row")
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := []float64{1, 2, 3}
	small := BarChart(values, nil, nil, theme.Active.Accent, 10, 2)
	if got := len([]rune(stripANSI(small))); got != len(values) {
		t.Errorf("tiny chart should degrade to a sparkline, got width %d", got)
	}
}

func TestLineChartContainsPoints(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := LineChart([]float64{5, 15, 10}, []string{"a", "b", "c"}, nil, theme.Active.Accent, 50, 10)
	if !strings.Contains(stripANSI(out), "●") {
		t.Error("line chart should plot at least one point")
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		maxVal float64
		want   float64
	}{
		{0, 1},
		{10, 2},
		{100, 20},
		{500, 100},
		{2400, 500},
		{1e6, 2e5},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.maxVal); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.maxVal, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.5, "0.50"},
		{42, "42"},
		{1500, "1.5k"},
		{2000000, "2M"},
		{3500000000, "3.5B"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('e'); got != 2 {
		t.Errorf("TabIdxByKey('e') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
