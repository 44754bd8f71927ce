package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/phishwatch/internal/client/logs"
)

func TestBind_ReleasesPrevious(t *testing.T) {
	c := NewCanvas(10)

	first := c.Bind([]logs.TrendPoint{{DateKey: "2024-03-01", PhishingRatioPercent: 50}})
	second := c.Bind([]logs.TrendPoint{{DateKey: "2024-03-02", PhishingRatioPercent: 10}})

	assert.True(t, first.Released())
	assert.False(t, second.Released())
	assert.Same(t, second, c.Live())
	require.ErrorIs(t, first.Draw(&bytes.Buffer{}), ErrReleased)
}

func TestClose_ReleasesLive(t *testing.T) {
	c := NewCanvas(10)
	h := c.Bind(nil)

	c.Close()
	assert.True(t, h.Released())
	assert.Nil(t, c.Live())

	c.Close()
}

func TestDraw(t *testing.T) {
	c := NewCanvas(10)
	h := c.Bind([]logs.TrendPoint{
		{DateKey: "03/01", PhishingRatioPercent: 50},
		{DateKey: "03/02", PhishingRatioPercent: 100},
		{DateKey: "03/03", PhishingRatioPercent: 0},
	})

	var buf bytes.Buffer
	require.NoError(t, h.Draw(&buf))
	assert.Equal(t,
		"03/01 |#####.....|  50.0%\n"+
			"03/02 |##########| 100.0%\n"+
			"03/03 |..........|   0.0%\n",
		buf.String())
}

func TestDraw_NoData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCanvas(0).Bind(nil).Draw(&buf))
	assert.Equal(t, "no data\n", buf.String())
}
