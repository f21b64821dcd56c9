package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/models"
)

// FileStore keeps records as JSON files under
// {base}/{year}/{MM_MonthName}/week_{N}/. Day records are named
// YYYY-MM-DD.json, week summaries week_{N}.json and month summaries
// MM_MonthName.json, next to the folders they summarize.
type FileStore struct {
	base string
}

// NewFileStore creates a file store rooted at base, creating the directory
// if needed.
func NewFileStore(base string) (*FileStore, error) {
	if base == "" {
		return nil, fmt.Errorf("store base directory is empty")
	}
	if err := os.MkdirAll(base, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{base: base}, nil
}

// Base returns the root directory of the store.
func (s *FileStore) Base() string {
	return s.base
}

// WeekDir returns the directory holding a bucket's day records and week
// summary.
func (s *FileStore) WeekDir(b calendar.Bucket) string {
	return filepath.Join(s.base, strconv.Itoa(b.Year), b.MonthFolder(), b.WeekFolder())
}

// MonthDir returns the directory holding a month's week folders and its
// month summary.
func (s *FileStore) MonthDir(year int, month time.Month) string {
	return filepath.Join(s.base, strconv.Itoa(year), calendar.MonthFolder(month))
}

// DayPath returns the JSON file path for a date's day record.
func (s *FileStore) DayPath(date time.Time) string {
	b := calendar.BucketOf(date)
	return filepath.Join(s.WeekDir(b), date.Format(calendar.DateFormat)+".json")
}

// WeekPath returns the JSON file path for a bucket's week summary.
func (s *FileStore) WeekPath(b calendar.Bucket) string {
	return filepath.Join(s.WeekDir(b), b.WeekFolder()+".json")
}

// MonthPath returns the JSON file path for a month summary.
func (s *FileStore) MonthPath(year int, month time.Month) string {
	return filepath.Join(s.MonthDir(year, month), calendar.MonthFolder(month)+".json")
}

// ReadDay returns the day record for a date, or ErrAbsent.
func (s *FileStore) ReadDay(date time.Time) (*models.DayRecord, error) {
	var rec models.DayRecord
	if err := s.readJSON(s.DayPath(date), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// WriteDay persists the day record at the date's bucket key.
func (s *FileStore) WriteDay(date time.Time, rec *models.DayRecord) error {
	return s.writeJSON(s.DayPath(date), rec)
}

// ReadWeek returns the week summary filed under the bucket, or ErrAbsent.
func (s *FileStore) ReadWeek(b calendar.Bucket) (*models.WeekSummary, error) {
	var sum models.WeekSummary
	if err := s.readJSON(s.WeekPath(b), &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// WriteWeek persists a week summary, overwriting any prior one.
func (s *FileStore) WriteWeek(b calendar.Bucket, sum *models.WeekSummary) error {
	return s.writeJSON(s.WeekPath(b), sum)
}

// ReadMonth returns the month summary, or ErrAbsent.
func (s *FileStore) ReadMonth(year int, month time.Month) (*models.MonthSummary, error) {
	var sum models.MonthSummary
	if err := s.readJSON(s.MonthPath(year, month), &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// WriteMonth persists a month summary, overwriting any prior one.
func (s *FileStore) WriteMonth(year int, month time.Month, sum *models.MonthSummary) error {
	return s.writeJSON(s.MonthPath(year, month), sum)
}

// WeekBuckets enumerates the week folders that exist under a month, sorted
// by week number.
func (s *FileStore) WeekBuckets(year int, month time.Month) ([]calendar.Bucket, error) {
	entries, err := os.ReadDir(s.MonthDir(year, month))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list month directory: %w", err)
	}

	var buckets []calendar.Bucket
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		numStr, ok := strings.CutPrefix(entry.Name(), "week_")
		if !ok {
			continue
		}
		num, err := strconv.Atoi(numStr)
		if err != nil || num < 1 {
			logger.Warn("skipping unrecognized week folder", "name", entry.Name())
			continue
		}
		buckets = append(buckets, calendar.Bucket{Year: year, Month: month, Week: num})
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Week < buckets[j].Week })
	return buckets, nil
}

// Years enumerates the year directories present in the store, ascending.
func (s *FileStore) Years() ([]int, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var years []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, err := strconv.Atoi(entry.Name())
		if err != nil || year < 1000 {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// Months enumerates the month directories present under a year, ascending.
func (s *FileStore) Months(year int) ([]time.Month, error) {
	entries, err := os.ReadDir(filepath.Join(s.base, strconv.Itoa(year)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list year directory: %w", err)
	}

	var months []time.Month
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		numStr, _, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}
		num, err := strconv.Atoi(numStr)
		if err != nil || num < 1 || num > 12 {
			continue
		}
		months = append(months, time.Month(num))
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months, nil
}

// WriteReport places a rendered markdown artifact next to the record it
// describes. name must already carry the _summary.md suffix.
func (s *FileStore) WriteReport(dir, name string, content []byte) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o640); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// readJSON loads a JSON record, mapping a missing file to ErrAbsent and an
// unparseable file to MalformedError.
func (s *FileStore) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrAbsent
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &MalformedError{Path: path, Err: err}
	}
	return nil
}

// writeJSON marshals v and writes it via a temp file plus rename so readers
// never observe a half-written record.
func (s *FileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o640); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
