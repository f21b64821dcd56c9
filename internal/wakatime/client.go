// Package wakatime fetches daily summaries from the WakaTime API and wraps
// them in day records with fetch-time evidence.
package wakatime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/models"
)

// ErrNoData is returned when the API answers successfully but reports no
// activity for the requested date. Callers treat this as absence, not as a
// fetch failure.
var ErrNoData = errors.New("no activity recorded for date")

const fetcherName = "wakalog"

// Client talks to the WakaTime summaries endpoint for a single user.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

// NewClient builds a client for the given API root and key. timeout bounds
// each request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// summariesResponse mirrors the WakaTime /summaries payload, limited to the
// fields the record needs.
type summariesResponse struct {
	Data []struct {
		GrandTotal struct {
			TotalSeconds float64 `json:"total_seconds"`
		} `json:"grand_total"`
		Languages        []apiBreakdownItem `json:"languages"`
		Categories       []apiBreakdownItem `json:"categories"`
		Projects         []apiBreakdownItem `json:"projects"`
		Editors          []apiBreakdownItem `json:"editors"`
		Machines         []apiBreakdownItem `json:"machines"`
		OperatingSystems []apiBreakdownItem `json:"operating_systems"`
		Range            struct {
			Date string `json:"date"`
		} `json:"range"`
	} `json:"data"`
}

type apiBreakdownItem struct {
	Name         string  `json:"name"`
	TotalSeconds float64 `json:"total_seconds"`
	Percent      float64 `json:"percent"`
}

// FetchDay retrieves the summary for one date and packages it as a day
// record with a content hash and external time witnesses attached.
func (c *Client) FetchDay(ctx context.Context, date time.Time) (*models.DayRecord, error) {
	dateStr := date.Format(calendar.DateFormat)
	reqURL := fmt.Sprintf("%s/users/current/summaries?start=%s&end=%s",
		c.baseURL, url.QueryEscape(dateStr), url.QueryEscape(dateStr))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create summaries request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.apiKey)))

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summaries request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read summaries response: %w", err)
	}
	elapsed := c.now().Sub(start)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summaries request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed summariesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse summaries response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, ErrNoData
	}

	summary := toDailySummary(parsed, dateStr)

	proof, err := BuildProof(ctx, summary)
	if err != nil {
		// Proof building never blocks a fetch; the summary is still good.
		logger.Warn("failed to build authenticity proof", "date", dateStr, "error", err)
	}

	return &models.DayRecord{
		Summary: summary,
		Proof:   proof,
		Request: &models.RequestEvidence{
			URL:          reqURL,
			Method:       "GET",
			StatusCode:   resp.StatusCode,
			DurationMs:   elapsed.Milliseconds(),
			ResponseSize: len(body),
		},
		FetchedAt:   c.now().UTC(),
		FetcherName: fetcherName,
	}, nil
}

// toDailySummary flattens the API payload for one date into the stored
// summary shape.
func toDailySummary(parsed summariesResponse, dateStr string) models.DailySummary {
	day := parsed.Data[0]

	breakdowns := make(map[models.BreakdownKind]models.Breakdown)
	for kind, items := range map[models.BreakdownKind][]apiBreakdownItem{
		models.KindLanguages:        day.Languages,
		models.KindCategories:       day.Categories,
		models.KindProjects:         day.Projects,
		models.KindEditors:          day.Editors,
		models.KindMachines:         day.Machines,
		models.KindOperatingSystems: day.OperatingSystems,
	} {
		if len(items) == 0 {
			continue
		}
		breakdown := make(models.Breakdown, 0, len(items))
		for _, item := range items {
			breakdown = append(breakdown, models.BreakdownItem{
				Name:         item.Name,
				TotalSeconds: item.TotalSeconds,
				Percent:      item.Percent,
			})
		}
		breakdowns[kind] = breakdown
	}

	if day.Range.Date != "" {
		dateStr = day.Range.Date
	}

	return models.DailySummary{
		Date:         dateStr,
		TotalSeconds: day.GrandTotal.TotalSeconds,
		Breakdowns:   breakdowns,
	}
}
