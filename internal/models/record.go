package models

import "time"

// DayRecord is the persisted form of one fetched day: the parsed summary
// plus the evidence collected at fetch time. The rollup engine only reads
// the Summary field; the proof blocks ride along untouched.
type DayRecord struct {
	Summary     DailySummary       `json:"summary"`
	Proof       *AuthenticityProof `json:"authenticity_proof,omitempty"`
	Request     *RequestEvidence   `json:"request_proof,omitempty"`
	FetchedAt   time.Time          `json:"fetched_at"`
	FetcherName string             `json:"fetcher,omitempty"`
}

// AuthenticityProof ties a day record to external evidence gathered when it
// was fetched, so data cannot be silently rewritten after the fact.
type AuthenticityProof struct {
	ContentHash string        `json:"content_hash"`
	Witnesses   []TimeWitness `json:"external_timestamps,omitempty"`
}

// TimeWitness is a timestamp obtained from a source outside this machine
// (or the system clock, labelled as the fallback).
type TimeWitness struct {
	Source string    `json:"source"`
	Time   time.Time `json:"time"`
}

// RequestEvidence records how the upstream request was made and answered.
type RequestEvidence struct {
	URL          string `json:"url"`
	Method       string `json:"method"`
	StatusCode   int    `json:"status_code"`
	DurationMs   int64  `json:"duration_ms"`
	ResponseSize int    `json:"response_size"`
}
