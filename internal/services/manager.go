// Package services orchestrates fetching, rollups, the usage index and the
// event stream consumed by the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/config"
	"github.com/haru2503/wakatime-log/internal/db"
	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/report"
	"github.com/haru2503/wakatime-log/internal/rollup"
	"github.com/haru2503/wakatime-log/internal/store"
	"github.com/haru2503/wakatime-log/internal/wakatime"
)

type (
	// DayFetchedEvent is emitted when a day record lands in the store.
	DayFetchedEvent struct {
		Date         string
		TotalSeconds float64
	}

	// RollupWrittenEvent is emitted when a week or month summary is
	// regenerated.
	RollupWrittenEvent struct {
		Scope        string // "week" or "month"
		Key          string
		TotalSeconds float64
	}

	// StoreChangedEvent is emitted when a record changes on disk outside
	// this process.
	StoreChangedEvent struct {
		Path string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent is emitted when the usage index totals change.
	StatsEvent struct {
		Totals  *models.IndexTotals
		Streaks *models.Streaks
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DayFetchedEvent) isServiceEvent()    {}
func (RollupWrittenEvent) isServiceEvent() {}
func (StoreChangedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()         {}
func (StatsEvent) isServiceEvent()         {}

// Manager wires the store, the rollup processor, the usage index and the
// optional fetcher together, and routes events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	store       *store.FileStore
	processor   *rollup.Processor
	database    *db.DB
	client      *wakatime.Client
	watcher     *Watcher
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a manager over the configured base directory. The
// WakaTime client is only constructed when an API key is present; read-only
// use works without one.
func NewManager(cfg *config.Config) (*Manager, error) {
	fileStore, err := store.NewFileStore(cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m := &Manager{
		cfg:       cfg,
		store:     fileStore,
		processor: rollup.NewProcessor(fileStore),
		database:  database,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	if cfg.APIKey != "" {
		m.client = wakatime.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.RequestTimeout)
	}

	return m, nil
}

// StartWatcher begins following the log tree for external changes,
// reindexing records as they settle. Used by the TUI; batch commands skip
// it.
func (m *Manager) StartWatcher() error {
	watcher, err := NewWatcher(m.store.Base())
	if err != nil {
		return fmt.Errorf("failed to start store watcher: %w", err)
	}
	m.watcher = watcher
	go m.routeWatcherEvents()
	return nil
}

// routeWatcherEvents turns settled file changes into index updates and
// subscriber events.
func (m *Manager) routeWatcherEvents() {
	for {
		select {
		case change, ok := <-m.watcher.Changes():
			if !ok {
				return
			}
			m.handleStoreChange(change.Path)

		case err, ok := <-m.watcher.Errors():
			if !ok {
				return
			}
			m.broadcast(ErrorEvent{Service: "watcher", Error: err})

		case <-m.stopChan:
			return
		}
	}
}

var dayFilePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

// handleStoreChange reindexes whichever record changed. Rollups are not
// re-triggered here: a day edit only refreshes the index, never cascades
// into new writes, so watcher and writer cannot feed each other.
func (m *Manager) handleStoreChange(path string) {
	name := filepath.Base(path)
	if !dayFilePattern.MatchString(name) {
		return
	}

	dateStr := strings.TrimSuffix(name, ".json")
	date, err := time.Parse(calendar.DateFormat, dateStr)
	if err != nil {
		return
	}
	rec, err := m.store.ReadDay(date)
	if err != nil {
		logger.Warn("changed day record unreadable", "path", path, "error", err)
		return
	}
	if err := m.database.IndexDay(rec); err != nil {
		m.broadcast(ErrorEvent{Service: "index", Error: err})
		return
	}
	m.broadcast(StoreChangedEvent{Path: path})
	m.broadcastStats()
}

// FetchDay fetches one date from the API, persists it, indexes it and runs
// any due rollups. A day the API reports no data for is left absent.
func (m *Manager) FetchDay(ctx context.Context, date time.Time) (*rollup.Result, error) {
	if m.client == nil {
		return nil, fmt.Errorf("no API key configured, cannot fetch")
	}
	date = calendar.Normalize(date)

	rec, err := m.client.FetchDay(ctx, date)
	if errors.Is(err, wakatime.ErrNoData) {
		logger.Info("no activity recorded", "date", date.Format(calendar.DateFormat))
		return m.ProcessDate(date)
	}
	if err != nil {
		return nil, err
	}

	if err := m.store.WriteDay(date, rec); err != nil {
		return nil, err
	}
	if err := m.database.IndexDay(rec); err != nil {
		return nil, err
	}

	m.broadcast(DayFetchedEvent{
		Date:         rec.Summary.Date,
		TotalSeconds: rec.Summary.TotalSeconds,
	})

	return m.ProcessDate(date)
}

// ProcessDate runs the rollup boundaries for a date and, for every summary
// written, updates the usage index and the markdown report next to it.
func (m *Manager) ProcessDate(date time.Time) (*rollup.Result, error) {
	res, err := m.processor.Process(date)
	if err != nil {
		return nil, err
	}
	m.publishRollups(res)
	return res, nil
}

// RecomputeWeek regenerates the week rollup containing date regardless of
// boundaries.
func (m *Manager) RecomputeWeek(date time.Time) (*rollup.Result, error) {
	res, err := m.processor.RecomputeWeek(date)
	if err != nil {
		return nil, err
	}
	m.publishRollups(res)
	return res, nil
}

// RecomputeMonth regenerates a month rollup once the month has elapsed.
func (m *Manager) RecomputeMonth(year int, month time.Month) (*rollup.Result, error) {
	res, err := m.processor.RecomputeMonth(year, month, time.Now())
	if err != nil {
		return nil, err
	}
	m.publishRollups(res)
	return res, nil
}

// publishRollups indexes and reports whatever a rollup result wrote, then
// notifies subscribers.
func (m *Manager) publishRollups(res *rollup.Result) {
	for _, skip := range res.Skips {
		logger.Warn("rollup skipped record", "key", skip.Key, "reason", skip.Reason)
	}

	if res.WeekWritten {
		m.publishWeek(res.WeekBucket)
	}
	if res.MonthWritten {
		m.publishMonth(res.MonthYear, res.Month)
	}
	if res.WeekWritten || res.MonthWritten {
		m.broadcastStats()
	}
}

func (m *Manager) publishWeek(b calendar.Bucket) {
	sum, err := m.store.ReadWeek(b)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "rollup", Error: err})
		return
	}

	if err := m.database.IndexWeek(b, sum); err != nil {
		m.broadcast(ErrorEvent{Service: "index", Error: err})
	}
	md := report.WeekMarkdown(sum)
	if err := m.store.WriteReport(m.store.WeekDir(b), b.WeekFolder()+"_summary.md", []byte(md)); err != nil {
		m.broadcast(ErrorEvent{Service: "report", Error: err})
	}

	m.broadcast(RollupWrittenEvent{Scope: "week", Key: b.String(), TotalSeconds: sum.TotalSeconds})
	m.notify("Week rolled up",
		fmt.Sprintf("%s to %s: %s", sum.WeekStart, sum.WeekEnd, report.FormatTimeReadable(sum.TotalSeconds)))
}

func (m *Manager) publishMonth(year int, month time.Month) {
	sum, err := m.store.ReadMonth(year, month)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "rollup", Error: err})
		return
	}

	if err := m.database.IndexMonth(year, month, sum); err != nil {
		m.broadcast(ErrorEvent{Service: "index", Error: err})
	}
	md := report.MonthMarkdown(sum)
	if err := m.store.WriteReport(m.store.MonthDir(year, month),
		calendar.MonthFolder(month)+"_summary.md", []byte(md)); err != nil {
		m.broadcast(ErrorEvent{Service: "report", Error: err})
	}

	key := fmt.Sprintf("%d-%02d", year, int(month))
	m.broadcast(RollupWrittenEvent{Scope: "month", Key: key, TotalSeconds: sum.TotalSeconds})
	m.notify("Month rolled up",
		fmt.Sprintf("%s %d: %s", sum.MonthName, year, report.FormatTimeReadable(sum.TotalSeconds)))
}

// Backfill regenerates every elapsed rollup in the store and refreshes the
// index from the resulting tree.
func (m *Manager) Backfill() (*rollup.BackfillResult, error) {
	res, err := rollup.Backfill(m.store, time.Now())
	if err != nil {
		return nil, err
	}
	if err := m.Reindex(); err != nil {
		return res, err
	}
	return res, nil
}

// Reindex rebuilds the usage index from the record tree. Malformed and
// absent records are skipped.
func (m *Manager) Reindex() error {
	years, err := m.store.Years()
	if err != nil {
		return err
	}

	for _, year := range years {
		months, err := m.store.Months(year)
		if err != nil {
			return err
		}
		for _, month := range months {
			if err := m.reindexMonth(year, month); err != nil {
				return err
			}
		}
	}

	m.broadcastStats()
	return nil
}

func (m *Manager) reindexMonth(year int, month time.Month) error {
	buckets, err := m.store.WeekBuckets(year, month)
	if err != nil {
		return err
	}

	for _, b := range buckets {
		monday, ok := b.Monday()
		if !ok {
			// Stub bucket: its days sit in the window containing the
			// month's 1st. Indexing is an upsert, so revisiting the same
			// window from the neighbouring month is harmless.
			monday, _ = calendar.WeekWindow(calendar.Date(year, month, 1))
		}
		for _, date := range calendar.WeekDates(monday) {
			rec, err := m.store.ReadDay(date)
			if err != nil {
				continue
			}
			if err := m.database.IndexDay(rec); err != nil {
				return err
			}
		}

		sum, err := m.store.ReadWeek(b)
		if err != nil {
			continue
		}
		if err := m.database.IndexWeek(b, sum); err != nil {
			return err
		}
	}

	sum, err := m.store.ReadMonth(year, month)
	if err != nil {
		return nil
	}
	return m.database.IndexMonth(year, month, sum)
}

// notify sends a desktop notification when enabled.
func (m *Manager) notify(title, body string) {
	if !m.cfg.Notify {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}

// broadcastStats publishes fresh index totals to subscribers.
func (m *Manager) broadcastStats() {
	totals, err := m.database.GetTotals()
	if err != nil {
		m.broadcast(ErrorEvent{Service: "index", Error: err})
		return
	}
	streaks, err := m.database.GetStreaks(time.Now())
	if err != nil {
		m.broadcast(ErrorEvent{Service: "index", Error: err})
		return
	}
	m.broadcast(StatsEvent{Totals: totals, Streaks: streaks})
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Store returns the record store.
func (m *Manager) Store() *store.FileStore {
	return m.store
}

// Database returns the usage index for direct queries.
func (m *Manager) Database() *db.DB {
	return m.database
}

// CanFetch reports whether an API client is configured.
func (m *Manager) CanFetch() bool {
	return m.client != nil
}

// InitialState returns the index totals, streaks and recent series for TUI
// initialization.
func (m *Manager) InitialState(rangeDays int) (*models.IndexTotals, *models.Streaks, []models.DailyPoint, error) {
	totals, err := m.database.GetTotals()
	if err != nil {
		return nil, nil, nil, err
	}
	streaks, err := m.database.GetStreaks(time.Now())
	if err != nil {
		return nil, nil, nil, err
	}
	series, err := m.database.GetDailySeries(rangeDays)
	if err != nil {
		return nil, nil, nil, err
	}
	return totals, streaks, series, nil
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
