// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Stats   bool
	Fetch   bool
}

// State is the application state shared between the root model and all tabs.
type State struct {
	mu sync.RWMutex

	Totals  *models.IndexTotals
	Streaks *models.Streaks
	Series  []models.DailyPoint
	Pace    *services.MonthPace
	Latest  *models.DayRecord

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "stats":
		s.Loading.Stats = loading
	case "fetch":
		s.Loading.Fetch = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Stats ||
		s.Loading.Fetch
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, "initial")
	}
	if s.Loading.Stats {
		resources = append(resources, "stats")
	}
	if s.Loading.Fetch {
		resources = append(resources, "fetch")
	}
	return resources
}

// SetStats updates the aggregate totals and streaks.
func (s *State) SetStats(totals *models.IndexTotals, streaks *models.Streaks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if totals != nil {
		s.Totals = totals
	}
	if streaks != nil {
		s.Streaks = streaks
	}
	s.LastUpdated = time.Now()
}

// GetTotals returns the current aggregate totals.
func (s *State) GetTotals() *models.IndexTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Totals
}

// GetStreaks returns the current streak figures.
func (s *State) GetStreaks() *models.Streaks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Streaks
}

// SetSeries updates the recent daily series.
func (s *State) SetSeries(series []models.DailyPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Series = series
	s.LastUpdated = time.Now()
}

// GetSeries returns a copy of the recent daily series.
func (s *State) GetSeries() []models.DailyPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := make([]models.DailyPoint, len(s.Series))
	copy(series, s.Series)
	return series
}

// SetPace updates the current-month pace projection.
func (s *State) SetPace(pace *services.MonthPace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pace = pace
}

// GetPace returns the current-month pace projection.
func (s *State) GetPace() *services.MonthPace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Pace
}

// SetLatest updates the most recently recorded day.
func (s *State) SetLatest(rec *models.DayRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Latest = rec
}

// GetLatest returns the most recently recorded day, or nil.
func (s *State) GetLatest() *models.DayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Latest
}

// HasData returns true once at least one recorded day is known.
func (s *State) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Totals != nil && s.Totals.DaysWithData > 0
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Clear expired inline when reading
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
