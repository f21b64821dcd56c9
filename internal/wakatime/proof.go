package wakatime

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/models"
)

// witnessEndpoints are hit at fetch time purely for their Date response
// header. Any that fail are skipped; the system clock is always recorded as
// a fallback witness.
var witnessEndpoints = map[string]string{
	"github_api":     "https://api.github.com",
	"cloudflare_dns": "https://cloudflare.com",
}

// BuildProof computes the content hash of a summary and gathers external
// time witnesses for it.
func BuildProof(ctx context.Context, summary models.DailySummary) (*models.AuthenticityProof, error) {
	hash, err := ContentHash(summary)
	if err != nil {
		return nil, err
	}
	return &models.AuthenticityProof{
		ContentHash: hash,
		Witnesses:   gatherWitnesses(ctx),
	}, nil
}

// ContentHash returns the SHA-256 of a summary's canonical JSON encoding.
// encoding/json sorts map keys, so the encoding is stable across runs.
func ContentHash(summary models.DailySummary) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to encode summary for hashing: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes a record's content hash and compares it against the
// stored proof. A record without a proof block fails verification.
func Verify(rec *models.DayRecord) (bool, error) {
	if rec.Proof == nil || rec.Proof.ContentHash == "" {
		return false, fmt.Errorf("record carries no authenticity proof")
	}
	hash, err := ContentHash(rec.Summary)
	if err != nil {
		return false, err
	}
	return hash == rec.Proof.ContentHash, nil
}

// gatherWitnesses collects Date headers from independent servers. Failures
// are logged and skipped so an offline witness never blocks a fetch.
func gatherWitnesses(ctx context.Context) []models.TimeWitness {
	client := &http.Client{Timeout: 5 * time.Second}
	var witnesses []models.TimeWitness

	for source, endpoint := range witnessEndpoints {
		req, err := http.NewRequestWithContext(ctx, "HEAD", endpoint, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			logger.Debug("time witness unreachable", "source", source, "error", err)
			continue
		}
		header := resp.Header.Get("Date")
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
		if header == "" {
			continue
		}
		when, err := http.ParseTime(header)
		if err != nil {
			logger.Debug("time witness sent unparseable date", "source", source, "value", header)
			continue
		}
		witnesses = append(witnesses, models.TimeWitness{Source: source, Time: when.UTC()})
	}

	witnesses = append(witnesses, models.TimeWitness{Source: "system_clock", Time: time.Now().UTC()})
	return witnesses
}
