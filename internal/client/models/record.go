package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is one detection result returned by GET /logs.
type Record struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Prediction bool      `json:"prediction"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Label is the human readable verdict.
func (r Record) Label() string {
	if r.Prediction {
		return "Phishing"
	}
	return "Safe"
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         int64    `json:"id"`
		URL        string   `json:"url"`
		Prediction *bool    `json:"prediction"`
		Confidence *float64 `json:"confidence"`
		Timestamp  *string  `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	rec := Record{ID: raw.ID, URL: raw.URL}
	if raw.Prediction != nil {
		rec.Prediction = *raw.Prediction
	}
	if raw.Confidence != nil {
		rec.Confidence = *raw.Confidence
	}
	if raw.Timestamp != nil && *raw.Timestamp != "" {
		ts, err := ParseTimestamp(*raw.Timestamp)
		if err != nil {
			return fmt.Errorf("record %d: %w", raw.ID, err)
		}
		rec.Timestamp = ts
	}

	*r = rec
	return nil
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp accepts RFC 3339 timestamps and the zoneless ISO-8601 form
// the backend emits for UTC values.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
