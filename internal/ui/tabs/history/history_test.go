package history

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haru2503/wakatime-log/internal/app"
	"github.com/haru2503/wakatime-log/internal/config"
	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/services"
)

func TestNew(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_Update(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(80, 24)

	// Fresh model, nothing loaded yet
	view := m.View()
	if view == "" {
		t.Error("View returned empty string")
	}
}

func TestModel_WithData(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		BaseDir:      tmpDir,
		DatabasePath: filepath.Join(tmpDir, "test.db"),
	}
	mgr, err := services.NewManager(cfg)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state, mgr)
	m.SetSize(100, 50)

	points := []models.DailyPoint{
		{Date: "2025-11-03", TotalSeconds: 3600},
		{Date: "2025-11-04", TotalSeconds: 7200},
		{Date: "2025-11-05", TotalSeconds: 1800},
	}
	months := []models.MonthStat{
		{Year: 2025, Month: 11, TotalSeconds: 12600, DaysWithData: 3},
	}

	m.Update(historyLoadedMsg{points: points, months: months})

	view := m.View()
	if view == "" {
		t.Error("View after load is empty")
	}
	if !strings.Contains(view, "2025-11-03") {
		t.Error("View should show the first date of the range")
	}
	if !strings.Contains(view, "Nov 2025") {
		t.Error("View should show the monthly totals label")
	}
}

func TestModel_LoadFromIndex(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		BaseDir:      tmpDir,
		DatabasePath: filepath.Join(tmpDir, "test.db"),
	}
	mgr, err := services.NewManager(cfg)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	rec := &models.DayRecord{
		Summary: models.DailySummary{Date: "2025-11-04", TotalSeconds: 5400},
	}
	if err := mgr.Database().IndexDay(rec); err != nil {
		t.Fatalf("IndexDay: %v", err)
	}

	state := app.NewState()
	m := New(state, mgr)
	m.SetSize(100, 50)

	msg := m.loadHistoryCmd()()
	loaded, ok := msg.(historyLoadedMsg)
	if !ok {
		t.Fatalf("expected historyLoadedMsg, got %T", msg)
	}
	if len(loaded.points) != 1 || loaded.points[0].Date != "2025-11-04" {
		t.Errorf("unexpected points: %+v", loaded.points)
	}
}

func TestModel_LoadError(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)

	msg := m.loadHistoryCmd()()
	if _, ok := msg.(historyErrorMsg); !ok {
		t.Fatalf("expected historyErrorMsg, got %T", msg)
	}

	_, cmd := m.Update(msg)
	if m.errorMsg == "" {
		t.Error("errorMsg should be set after historyErrorMsg")
	}
	if cmd == nil {
		t.Error("expected a notification command")
	}
}

func TestModel_ToggleRange(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)

	before := m.timeRange
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if m.timeRange == before {
		t.Error("expected 't' to cycle the time range")
	}
	if !m.loading {
		t.Error("toggling the range should trigger a reload")
	}
}

func TestModel_WeekdayAverages(t *testing.T) {
	points := []models.DailyPoint{
		{Date: "2025-11-03", TotalSeconds: 3600}, // Monday
		{Date: "2025-11-10", TotalSeconds: 7200}, // Monday
		{Date: "2025-11-09", TotalSeconds: 1800}, // Sunday
		{Date: "not-a-date", TotalSeconds: 999},
	}

	avgs, used := weekdayAverages(points)
	if used != 3 {
		t.Errorf("used = %d, want 3", used)
	}
	if avgs[0] != 5400 {
		t.Errorf("Monday average = %v, want 5400", avgs[0])
	}
	if avgs[6] != 1800 {
		t.Errorf("Sunday average = %v, want 1800", avgs[6])
	}
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
