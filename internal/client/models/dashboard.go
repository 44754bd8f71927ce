package models

import "math"

// Summary holds the feedback counters from GET /dashboard.
type Summary struct {
	TotalFeedback int `json:"total_feedback"`
	Phishing      int `json:"phishing"`
}

// Accuracy is the share of feedback not flagged as phishing, in percent,
// rounded to one decimal. ok is false when no feedback exists.
func (s Summary) Accuracy() (pct float64, ok bool) {
	if s.TotalFeedback <= 0 {
		return 0, false
	}
	v := float64(s.TotalFeedback-s.Phishing) / float64(s.TotalFeedback) * 100
	return math.Round(v*10) / 10, true
}

// Prediction is the verdict for a single URL from POST /predict.
type Prediction struct {
	Phishing   bool    `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// Health is the GET /health payload.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
