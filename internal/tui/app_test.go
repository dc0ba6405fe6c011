package tui

import (
	"testing"
	"time"

	"fedigraph/internal/model"
	"fedigraph/internal/pipeline"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedApp(t *testing.T) App {
	t.Helper()

	a := NewApp(Options{
		Granularity: model.Month,
		Chart:       model.Bar,
		Events: []model.KnownEvent{
			{Label: "Launch", Date: "2025-01-15 00:00:00"},
		},
	})
	a.needSetup = false

	result := &pipeline.LoadResult{
		Records: []model.Record{
			{ID: 1, TotalUsers: 10, DateChecked: "2025-01-01 12:00:00"},
			{ID: 2, TotalUsers: 5, DateChecked: "2025-01-15 12:00:00"},
			{ID: 3, TotalUsers: 7, DateChecked: "2025-02-01 12:00:00"},
		},
		FetchedAt: time.Now(),
	}
	m, _ := a.Update(DataLoadedMsg{Result: result})
	return m.(App)
}

func TestDataLoadedRecomputes(t *testing.T) {
	a := loadedApp(t)

	if !a.loaded {
		t.Fatal("app should be loaded after DataLoadedMsg")
	}
	if len(a.series) != 2 {
		t.Fatalf("series length = %d, want 2 monthly buckets", len(a.series))
	}
	if a.series[0].Key != "2025-01" || a.series[0].Total != 15 {
		t.Errorf("first bucket = %s/%d, want 2025-01/15", a.series[0].Key, a.series[0].Total)
	}
	if len(a.annotations) != 1 || a.annotations[0].Index != 0 {
		t.Errorf("annotations = %v, want one anchored at bucket 0", a.annotations)
	}
}

func TestGranularityKeySwitch(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(keyMsg('d'))
	a = m.(App)

	if a.opts.Granularity != model.Day {
		t.Fatalf("granularity = %v, want Day", a.opts.Granularity)
	}
	if len(a.series) != 3 {
		t.Errorf("daily series length = %d, want 3", len(a.series))
	}
	if a.series[0].Key != "2025-01-01" {
		t.Errorf("first daily key = %s, want 2025-01-01", a.series[0].Key)
	}
}

func TestChartKindKeys(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(keyMsg('l'))
	a = m.(App)
	if a.opts.Chart != model.Line {
		t.Errorf("chart = %v after 'l', want Line", a.opts.Chart)
	}

	m, _ = a.Update(keyMsg('b'))
	a = m.(App)
	if a.opts.Chart != model.Bar {
		t.Errorf("chart = %v after 'b', want Bar", a.opts.Chart)
	}
}

func TestTabNavigation(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(keyMsg('e'))
	a = m.(App)
	if a.activeTab != 2 {
		t.Errorf("activeTab = %d after 'e', want 2", a.activeTab)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRight})
	a = m.(App)
	if a.activeTab != 3 {
		t.Errorf("activeTab = %d after right, want 3", a.activeTab)
	}

	// Wraps around past the last tab
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRight})
	a = m.(App)
	if a.activeTab != 0 {
		t.Errorf("activeTab = %d after wrap, want 0", a.activeTab)
	}
}

func TestLoadErrorSurfaced(t *testing.T) {
	a := NewApp(Options{Granularity: model.Month, Chart: model.Bar})
	a.needSetup = false

	m, _ := a.Update(DataLoadedMsg{Err: errFake})
	a = m.(App)

	if !a.loaded {
		t.Fatal("app should mark loaded even on error so the message renders")
	}
	if a.loadErr == nil {
		t.Fatal("load error should be kept")
	}
}

var errFake = fakeErr("fetch failed")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
