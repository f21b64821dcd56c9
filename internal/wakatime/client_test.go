package wakatime

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
)

// silenceWitnesses keeps tests off the network; the system clock fallback
// still produces one witness.
func silenceWitnesses(t *testing.T) {
	t.Helper()
	saved := witnessEndpoints
	witnessEndpoints = map[string]string{}
	t.Cleanup(func() { witnessEndpoints = saved })
}

const summariesPayload = `{
  "data": [
    {
      "grand_total": {"total_seconds": 12600.5},
      "languages": [
        {"name": "Go", "total_seconds": 9000, "percent": 71.43},
        {"name": "Python", "total_seconds": 3600.5, "percent": 28.57}
      ],
      "categories": [
        {"name": "Coding", "total_seconds": 12600.5, "percent": 100}
      ],
      "projects": [],
      "editors": [
        {"name": "Neovim", "total_seconds": 12600.5, "percent": 100}
      ],
      "range": {"date": "2025-01-07"}
    }
  ]
}`

func TestFetchDay(t *testing.T) {
	silenceWitnesses(t)

	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(summariesPayload)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "waka_secret", 5*time.Second)
	date := calendar.Date(2025, time.January, 7)

	rec, err := client.FetchDay(context.Background(), date)
	if err != nil {
		t.Fatalf("FetchDay failed: %v", err)
	}

	wantPath := "/users/current/summaries?start=2025-01-07&end=2025-01-07"
	if gotPath != wantPath {
		t.Errorf("request path = %q, want %q", gotPath, wantPath)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("waka_secret"))
	if gotAuth != wantAuth {
		t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
	}

	if rec.Summary.Date != "2025-01-07" {
		t.Errorf("Date = %q, want 2025-01-07", rec.Summary.Date)
	}
	if rec.Summary.TotalSeconds != 12600.5 {
		t.Errorf("TotalSeconds = %v, want 12600.5", rec.Summary.TotalSeconds)
	}

	langs := rec.Summary.Breakdowns[models.KindLanguages]
	if len(langs) != 2 || langs[0].Name != "Go" || langs[0].TotalSeconds != 9000 {
		t.Errorf("languages = %+v", langs)
	}
	// Empty API lists are dropped, not stored as empty slices.
	if _, ok := rec.Summary.Breakdowns[models.KindProjects]; ok {
		t.Error("empty projects breakdown should be omitted")
	}

	if rec.Request == nil {
		t.Fatal("request evidence missing")
	}
	if rec.Request.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", rec.Request.StatusCode)
	}
	if rec.Request.ResponseSize != len(summariesPayload) {
		t.Errorf("ResponseSize = %d, want %d", rec.Request.ResponseSize, len(summariesPayload))
	}
	if rec.FetcherName != "wakalog" {
		t.Errorf("FetcherName = %q, want wakalog", rec.FetcherName)
	}

	if rec.Proof == nil || rec.Proof.ContentHash == "" {
		t.Fatal("authenticity proof missing")
	}
	ok, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("freshly fetched record failed verification")
	}
}

func TestFetchDay_NoData(t *testing.T) {
	silenceWitnesses(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"data": []}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "waka_secret", 5*time.Second)
	_, err := client.FetchDay(context.Background(), calendar.Date(2025, time.January, 7))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("FetchDay = %v, want ErrNoData", err)
	}
}

func TestFetchDay_APIError(t *testing.T) {
	silenceWitnesses(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad_key", 5*time.Second)
	_, err := client.FetchDay(context.Background(), calendar.Date(2025, time.January, 7))
	if err == nil {
		t.Fatal("FetchDay with 401 returned nil error")
	}
	if errors.Is(err, ErrNoData) {
		t.Error("API error must not be reported as ErrNoData")
	}
}
