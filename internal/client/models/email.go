package models

import (
	"encoding/json"
	"time"
)

// QuarantinedEmail is an email the backend held back for review.
type QuarantinedEmail struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"email_content"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (q *QuarantinedEmail) UnmarshalJSON(b []byte) error {
	type alias QuarantinedEmail
	var raw struct {
		alias
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*q = QuarantinedEmail(raw.alias)
	if raw.Timestamp != "" {
		ts, err := ParseTimestamp(raw.Timestamp)
		if err != nil {
			return err
		}
		q.Timestamp = ts
	}
	return nil
}

// ScannedEmail is one inbox message classified by POST /scan-inbox.
type ScannedEmail struct {
	ID         int64   `json:"id"`
	Sender     string  `json:"sender"`
	Subject    string  `json:"subject"`
	Snippet    string  `json:"snippet"`
	IsPhishing bool    `json:"is_phishing"`
	Confidence float64 `json:"confidence"`
}

// InboxScan summarises an inbox scan.
type InboxScan struct {
	Scanned          int            `json:"scanned"`
	Quarantined      int            `json:"quarantined"`
	PhishingDetected int            `json:"phishing_detected"`
	Emails           []ScannedEmail `json:"emails"`
}

// EMLScan is the verdict for an uploaded .eml file. EmailID is set only
// when the message was quarantined.
type EMLScan struct {
	IsPhishing  bool    `json:"is_phishing"`
	Confidence  float64 `json:"confidence"`
	Quarantined bool    `json:"quarantined"`
	EmailID     *int64  `json:"email_id,omitempty"`
}
