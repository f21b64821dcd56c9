package app

import (
	"testing"
	"time"

	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.HasData() {
		t.Error("Fresh state should have no data")
	}
	if s.Loading.Initial != true {
		t.Error("Initial loading should be true")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("stats", true)
	if !s.Loading.Stats {
		t.Error("Stats loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("stats", false)
	// Initial is still true
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	resources := s.GetLoadingResources()
	if len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("fetch", true)
	resources = s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "fetch" {
		t.Errorf("GetLoadingResources should contain fetch, got %v", resources)
	}
}

func TestState_Stats(t *testing.T) {
	s := NewState()

	totals := &models.IndexTotals{TotalSeconds: 7200, DaysWithData: 2, LastDate: "2025-01-08"}
	streaks := &models.Streaks{Current: 2, Longest: 4}

	s.SetStats(totals, streaks)

	if s.GetTotals().TotalSeconds != 7200 {
		t.Errorf("TotalSeconds = %v, want 7200", s.GetTotals().TotalSeconds)
	}
	if s.GetStreaks().Longest != 4 {
		t.Errorf("Longest = %d, want 4", s.GetStreaks().Longest)
	}
	if !s.HasData() {
		t.Error("HasData should be true with recorded days")
	}

	// Nil arguments leave existing values intact
	s.SetStats(nil, nil)
	if s.GetTotals() == nil || s.GetStreaks() == nil {
		t.Error("SetStats(nil, nil) should not clear existing values")
	}
}

func TestState_Series(t *testing.T) {
	s := NewState()

	series := []models.DailyPoint{
		{Date: "2025-01-06", TotalSeconds: 3600},
		{Date: "2025-01-07", TotalSeconds: 7200},
	}
	s.SetSeries(series)

	got := s.GetSeries()
	if len(got) != 2 {
		t.Fatalf("GetSeries len = %d, want 2", len(got))
	}

	// Returned slice is a copy
	got[0].TotalSeconds = 0
	if s.GetSeries()[0].TotalSeconds != 3600 {
		t.Error("GetSeries should return a copy")
	}
}

func TestState_PaceAndLatest(t *testing.T) {
	s := NewState()

	s.SetPace(&services.MonthPace{Year: 2025, Month: time.January, ProjectedSeconds: 100000})
	if s.GetPace() == nil || s.GetPace().ProjectedSeconds != 100000 {
		t.Error("Pace should be stored")
	}

	rec := &models.DayRecord{FetcherName: "wakalog"}
	s.SetLatest(rec)
	if s.GetLatest() != rec {
		t.Error("Latest record should be stored")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	// Expired
	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})

	// Active
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != "active" {
		t.Errorf("Expected active notification, got %s", notifs[0].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID {
		t.Errorf("Expected ID %s, got %s", LoadingNotificationID, notifs[0].ID)
	}
	if notifs[0].Message != "loading..." {
		t.Errorf("Expected message loading..., got %s", notifs[0].Message)
	}

	// Update message
	s.SetLoadingNotification("still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification after update")
	}
	if notifs[0].Message != "still loading..." {
		t.Errorf("Expected message still loading..., got %s", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestState_TimeSinceUpdate(t *testing.T) {
	s := NewState()

	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any update")
	}

	before := s.LastUpdated
	time.Sleep(time.Millisecond) // Ensure time advances
	s.SetSeries(nil)

	if !s.LastUpdated.After(before) {
		t.Error("LastUpdated should be updated")
	}
	if s.TimeSinceUpdate() == 0 {
		t.Error("TimeSinceUpdate should be > 0")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		t    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
