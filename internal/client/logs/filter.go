package logs

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
)

// Status selects records by verdict.
type Status string

const (
	StatusAll      Status = "all"
	StatusPhishing Status = "phishing"
	StatusSafe     Status = "safe"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAll, StatusPhishing, StatusSafe:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", common.ErrValidation, s)
	}
}

// DateRange is an inclusive interval of instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DayRange covers the calendar days from..to in loc, both inclusive.
func DayRange(from, to time.Time, loc *time.Location) DateRange {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return DateRange{Start: start, End: end}
}

func (r DateRange) contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Predicate is a validated filter. Build it with NewPredicate or the With*
// methods; the zero value is not valid.
type Predicate struct {
	status        Status
	minConfidence float64
	maxConfidence float64
	dates         *DateRange
}

// DefaultPredicate matches every record.
func DefaultPredicate() Predicate {
	return Predicate{status: StatusAll, minConfidence: 0, maxConfidence: 1}
}

// NewPredicate validates and builds a predicate. Out-of-range values are
// rejected with common.ErrValidation, never clamped. dates may be nil.
func NewPredicate(status Status, minConfidence, maxConfidence float64, dates *DateRange) (Predicate, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return Predicate{}, err
	}
	if math.IsNaN(minConfidence) || math.IsNaN(maxConfidence) ||
		minConfidence < 0 || maxConfidence > 1 || minConfidence > maxConfidence {
		return Predicate{}, fmt.Errorf("%w: confidence range must satisfy 0 <= min <= max <= 1, got [%v, %v]",
			common.ErrValidation, minConfidence, maxConfidence)
	}
	if dates != nil {
		if dates.End.Before(dates.Start) {
			return Predicate{}, fmt.Errorf("%w: date range ends before it starts", common.ErrValidation)
		}
		d := *dates
		dates = &d
	}
	return Predicate{status: status, minConfidence: minConfidence, maxConfidence: maxConfidence, dates: dates}, nil
}

func (p Predicate) Status() Status { return p.status }

func (p Predicate) Confidence() (min, max float64) { return p.minConfidence, p.maxConfidence }

// Dates returns the date range, or nil when dates are unfiltered.
func (p Predicate) Dates() *DateRange {
	if p.dates == nil {
		return nil
	}
	d := *p.dates
	return &d
}

func (p Predicate) WithStatus(s Status) (Predicate, error) {
	return NewPredicate(s, p.minConfidence, p.maxConfidence, p.dates)
}

func (p Predicate) WithConfidence(min, max float64) (Predicate, error) {
	return NewPredicate(p.status, min, max, p.dates)
}

// WithDates replaces the date range; nil removes it.
func (p Predicate) WithDates(r *DateRange) (Predicate, error) {
	return NewPredicate(p.status, p.minConfidence, p.maxConfidence, r)
}

func (p Predicate) IsDefault() bool {
	return p.status == StatusAll && p.minConfidence == 0 && p.maxConfidence == 1 && p.dates == nil
}

// Match reports whether r satisfies every part of the predicate.
func (p Predicate) Match(r models.Record) bool {
	switch p.status {
	case StatusPhishing:
		if !r.Prediction {
			return false
		}
	case StatusSafe:
		if r.Prediction {
			return false
		}
	}
	if p.dates != nil && !p.dates.contains(r.Timestamp) {
		return false
	}
	return r.Confidence >= p.minConfidence && r.Confidence <= p.maxConfidence
}

func (p Predicate) String() string {
	s := fmt.Sprintf("status=%s confidence=[%.2f, %.2f]", p.status, p.minConfidence, p.maxConfidence)
	if p.dates != nil {
		s += fmt.Sprintf(" dates=[%s, %s]", p.dates.Start.Format(time.RFC3339), p.dates.End.Format(time.RFC3339))
	}
	return s
}

// Apply returns the records matching p, in their original order.
func Apply(records []models.Record, p Predicate) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Counts are the totals shown on the summary cards.
type Counts struct {
	Total    int
	Phishing int
	Safe     int
}

func Summarize(records []models.Record) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		if r.Prediction {
			c.Phishing++
		}
	}
	c.Safe = c.Total - c.Phishing
	return c
}
