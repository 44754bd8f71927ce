package logs

import (
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
)

// SpikeThreshold is the share of phishing results in today's records
// above which the dashboard raises an alert.
const SpikeThreshold = 0.6

// TrendPoint is one day of the phishing trend.
type TrendPoint struct {
	Day                  time.Time
	DateKey              string
	Total                int
	Phishing             int
	PhishingRatioPercent float64
}

// Aggregate buckets records by calendar day in loc and computes each day's
// phishing percentage rounded to one decimal. Points are ordered by date
// and labelled with layout.
func Aggregate(records []models.Record, loc *time.Location, layout string) []TrendPoint {
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[time.Time]*TrendPoint)
	for _, r := range records {
		local := r.Timestamp.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

		p, ok := byDay[day]
		if !ok {
			p = &TrendPoint{Day: day, DateKey: day.Format(layout)}
			byDay[day] = p
		}
		p.Total++
		if r.Prediction {
			p.Phishing++
		}
	}

	out := make([]TrendPoint, 0, len(byDay))
	for _, p := range byDay {
		p.PhishingRatioPercent = roundTenth(100 * float64(p.Phishing) / float64(p.Total))
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// SpikeDetected reports whether the phishing share among records from the
// calendar day of now (in loc) exceeds threshold. It also returns that share.
func SpikeDetected(records []models.Record, now time.Time, loc *time.Location, threshold float64) (bool, float64) {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()

	total, phishing := 0, 0
	for _, r := range records {
		ry, rm, rd := r.Timestamp.In(loc).Date()
		if ry != y || rm != m || rd != d {
			continue
		}
		total++
		if r.Prediction {
			phishing++
		}
	}
	if total == 0 {
		return false, 0
	}
	rate := float64(phishing) / float64(total)
	return rate > threshold, rate
}
