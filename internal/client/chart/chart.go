// Package chart renders the daily phishing trend as a text bar chart.
//
// A Canvas owns at most one live Handle. Binding new data releases the
// previous handle, and closing the canvas releases the last one, so a view
// that reloads repeatedly never accumulates stale charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/dmitrijs2005/phishwatch/internal/client/logs"
)

var ErrReleased = errors.New("chart handle released")

const defaultWidth = 40

type Canvas struct {
	mu    sync.Mutex
	width int
	live  *Handle
}

// NewCanvas returns a canvas whose bars are at most width cells long.
func NewCanvas(width int) *Canvas {
	if width <= 0 {
		width = defaultWidth
	}
	return &Canvas{width: width}
}

// Bind releases the current handle, if any, and returns a new one drawing
// points.
func (c *Canvas) Bind(points []logs.TrendPoint) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live != nil {
		c.live.release()
	}
	h := &Handle{points: append([]logs.TrendPoint(nil), points...), width: c.width}
	c.live = h
	return h
}

// Live returns the active handle or nil.
func (c *Canvas) Live() *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Close releases the active handle.
func (c *Canvas) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live != nil {
		c.live.release()
		c.live = nil
	}
}

type Handle struct {
	mu       sync.Mutex
	points   []logs.TrendPoint
	width    int
	released bool
}

func (h *Handle) release() {
	h.mu.Lock()
	h.released = true
	h.points = nil
	h.mu.Unlock()
}

func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Draw writes one line per day: label, bar, percentage.
func (h *Handle) Draw(w io.Writer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return ErrReleased
	}
	if len(h.points) == 0 {
		_, err := fmt.Fprintln(w, "no data")
		return err
	}

	labelWidth := 0
	for _, p := range h.points {
		labelWidth = max(labelWidth, len(p.DateKey))
	}
	for _, p := range h.points {
		n := int(math.Round(p.PhishingRatioPercent / 100 * float64(h.width)))
		bar := strings.Repeat("#", n) + strings.Repeat(".", h.width-n)
		if _, err := fmt.Fprintf(w, "%-*s |%s| %5.1f%%\n", labelWidth, p.DateKey, bar, p.PhishingRatioPercent); err != nil {
			return err
		}
	}
	return nil
}
