package info

import (
	"strings"
	"testing"
	"time"

	"github.com/haru2503/wakatime-log/internal/app"
	"github.com/haru2503/wakatime-log/internal/config"
	"github.com/haru2503/wakatime-log/internal/models"
)

func TestNew(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{}
	m := New(state, cfg)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{
		BaseDir:        "/tmp/wakalog",
		DatabasePath:   "/tmp/wakalog/usage.db",
		APIBaseURL:     "https://wakatime.com/api/v1",
		APIKey:         "waka_secret",
		RequestTimeout: 30 * time.Second,
		Notify:         true,
		LogLevel:       "info",
	}
	m := New(state, cfg)
	m.SetSize(80, 24)

	view := m.View()
	if view == "" {
		t.Fatal("View returned empty string")
	}
	if !strings.Contains(view, "/tmp/wakalog") {
		t.Error("View should show the log directory")
	}
	if strings.Contains(view, "waka_secret") {
		t.Error("View must not leak the API key")
	}
	if !strings.Contains(view, "configured") {
		t.Error("View should say the API key is configured")
	}
}

func TestModel_View_NilConfig(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("View should handle a missing config")
	}
}

func TestModel_View_DaysRecorded(t *testing.T) {
	state := app.NewState()
	state.SetStats(&models.IndexTotals{DaysWithData: 12, TotalSeconds: 1}, nil)

	m := New(state, &config.Config{})
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "12") {
		t.Error("View should show the recorded day count")
	}
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state, &config.Config{})
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
