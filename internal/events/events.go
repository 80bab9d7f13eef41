package events

import (
	"encoding/json"
	"time"
)

const (
	TypeJobsScraped    = "jobs_scraped"
	TypeJobAnalyzed    = "job_analyzed"
	TypeConfigReloaded = "config_reloaded"
	TypePing           = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type JobsScraped struct {
	Count    int    `json:"count"`
	Source   string `json:"source"`
	Fallback bool   `json:"fallback"`
}

type JobAnalyzed struct {
	Category     string  `json:"category"`
	Confidence   float64 `json:"confidence"`
	IsSuspicious bool    `json:"is_suspicious"`
}

type ConfigReloaded struct {
	Warnings []string `json:"warnings,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
