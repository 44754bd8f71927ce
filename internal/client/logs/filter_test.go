package logs

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
)

func rec(id int64, phishing bool, conf float64, ts time.Time) models.Record {
	return models.Record{ID: id, URL: "http://example.com/" + string(rune('a'+id)), Prediction: phishing, Confidence: conf, Timestamp: ts}
}

func ids(rs []models.Record) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

var day1 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func sample() []models.Record {
	return []models.Record{
		rec(1, true, 0.9, day1),
		rec(2, false, 0.2, day1.Add(time.Hour)),
		rec(3, true, 0.5, day1.AddDate(0, 0, 1)),
		rec(4, false, 1.0, day1.AddDate(0, 0, 2)),
		rec(5, true, 0.0, day1.AddDate(0, 0, 3)),
	}
}

func TestApply_DefaultIsIdentity(t *testing.T) {
	got := Apply(sample(), DefaultPredicate())
	assert.Equal(t, sample(), got)
	assert.True(t, DefaultPredicate().IsDefault())
}

func TestApply_Status(t *testing.T) {
	p, err := DefaultPredicate().WithStatus(StatusPhishing)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5}, ids(Apply(sample(), p)))

	p, err = DefaultPredicate().WithStatus(StatusSafe)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, ids(Apply(sample(), p)))
}

func TestApply_ConfidenceBoundsInclusive(t *testing.T) {
	p, err := DefaultPredicate().WithConfidence(0.5, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, ids(Apply(sample(), p)))

	p, err = DefaultPredicate().WithConfidence(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(Apply(sample(), p)))
}

func TestApply_DateRangeInclusive(t *testing.T) {
	r := DateRange{Start: day1.Add(time.Hour), End: day1.AddDate(0, 0, 2)}
	p, err := DefaultPredicate().WithDates(&r)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, ids(Apply(sample(), p)))
}

func TestApply_Conjunction(t *testing.T) {
	r := DayRange(day1, day1.AddDate(0, 0, 1), time.UTC)
	p, err := NewPredicate(StatusPhishing, 0.6, 1, &r)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(Apply(sample(), p)))
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, DefaultPredicate())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_IsStableAndPure(t *testing.T) {
	in := sample()
	p, _ := DefaultPredicate().WithStatus(StatusPhishing)

	first := Apply(in, p)
	second := Apply(in, p)
	assert.Equal(t, first, second)
	assert.Equal(t, sample(), in, "input untouched")
}

func TestNewPredicate_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		min, max float64
		dates    *DateRange
	}{
		{"min below zero", StatusAll, -0.1, 1, nil},
		{"max above one", StatusAll, 0, 1.01, nil},
		{"min above max", StatusAll, 0.8, 0.2, nil},
		{"nan", StatusAll, math.NaN(), 1, nil},
		{"bad status", Status("maybe"), 0, 1, nil},
		{"reversed dates", StatusAll, 0, 1, &DateRange{Start: day1, End: day1.Add(-time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPredicate(tt.status, tt.min, tt.max, tt.dates)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestWithConfidence_RejectionKeepsPrevious(t *testing.T) {
	p := DefaultPredicate()
	_, err := p.WithConfidence(-1, 2)
	require.Error(t, err)

	min, max := p.Confidence()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)
}

func TestPredicate_DatesCopied(t *testing.T) {
	r := DateRange{Start: day1, End: day1.Add(time.Hour)}
	p, err := DefaultPredicate().WithDates(&r)
	require.NoError(t, err)

	r.End = day1.AddDate(1, 0, 0)
	assert.True(t, p.Dates().End.Equal(day1.Add(time.Hour)))

	cleared, err := p.WithDates(nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Dates())
	assert.True(t, cleared.IsDefault())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Phishing ")
	require.NoError(t, err)
	assert.Equal(t, StatusPhishing, s)

	_, err = ParseStatus("spam")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestDayRange(t *testing.T) {
	riga, err := time.LoadLocation("Europe/Riga")
	require.NoError(t, err)

	r := DayRange(time.Date(2024, 3, 1, 15, 0, 0, 0, riga), time.Date(2024, 3, 2, 1, 0, 0, 0, riga), riga)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, riga), r.Start)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 999999999, riga), r.End)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Counts{Total: 5, Phishing: 3, Safe: 2}, Summarize(sample()))
	assert.Equal(t, Counts{}, Summarize(nil))
}
