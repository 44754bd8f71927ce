package views

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/chart"
	"github.com/dmitrijs2005/phishwatch/internal/client/logs"
	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

// DashboardSource fetches the data behind the dashboard.
type DashboardSource interface {
	LogsSource
	Dashboard(ctx context.Context) (models.Summary, error)
}

// Snapshot is the dashboard as of the last successful load.
type Snapshot struct {
	Summary   models.Summary
	Counts    logs.Counts
	Trend     []logs.TrendPoint
	Spike     bool
	SpikeRate float64
	LoadedAt  time.Time
}

// Accuracy is the share of feedback not flagged as phishing. ok is false
// when no feedback has been given yet.
func (s Snapshot) Accuracy() (pct float64, ok bool) {
	return s.Summary.Accuracy()
}

type DashboardView struct {
	src    DashboardSource
	canvas *chart.Canvas
	opts   Options
	log    logging.Logger
	now    func() time.Time
	epoch  *epoch

	mu    sync.Mutex
	state State
	err   error
	snap  Snapshot
	chart *chart.Handle
}

func NewDashboardView(src DashboardSource, sessions Sessions, canvas *chart.Canvas, opts Options, log logging.Logger) *DashboardView {
	v := &DashboardView{
		src:    src,
		canvas: canvas,
		opts:   opts.withDefaults(),
		log:    log.With("view", "dashboard"),
		now:    time.Now,
	}
	v.epoch = watchLogout(sessions, v.reset)
	return v
}

func (v *DashboardView) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snap = Snapshot{}
	v.state = Idle
	v.err = nil
	v.chart = nil
	v.canvas.Close()
}

// Load fetches the counters and the history, then rebuilds the trend and
// rebinds the chart. Either request failing leaves the previous snapshot
// in place and the view in Failed.
func (v *DashboardView) Load(ctx context.Context) error {
	started := v.epoch.current()

	v.mu.Lock()
	v.state = Loading
	v.err = nil
	v.mu.Unlock()

	summary, err := v.src.Dashboard(ctx)
	var records []models.Record
	if err == nil {
		records, err = v.src.Logs(ctx)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.epoch.current() != started {
		v.log.Debug(ctx, "dropping dashboard response received after logout")
		v.state = Idle
		return common.ErrUnauthorized
	}
	if err != nil {
		v.state = Failed
		v.err = err
		return err
	}

	now := v.now()
	spike, rate := logs.SpikeDetected(records, now, v.opts.Location, logs.SpikeThreshold)
	v.snap = Snapshot{
		Summary:   summary,
		Counts:    logs.Summarize(records),
		Trend:     logs.Aggregate(records, v.opts.Location, v.opts.DateLayout),
		Spike:     spike,
		SpikeRate: rate,
		LoadedAt:  now,
	}
	if spike {
		v.log.Warn(ctx, "phishing spike detected", "rate", rate)
	}

	if len(v.snap.Trend) == 0 {
		v.canvas.Close()
		v.chart = nil
	} else {
		v.chart = v.canvas.Bind(v.snap.Trend)
	}
	v.state = Ready
	return nil
}

func (v *DashboardView) State() (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.err
}

func (v *DashboardView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.snap
	s.Trend = append([]logs.TrendPoint(nil), v.snap.Trend...)
	return s
}

// Chart returns the live chart handle, or nil when there is nothing to
// draw.
func (v *DashboardView) Chart() *chart.Handle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.chart
}

// Close releases the chart and stops listening for session changes.
func (v *DashboardView) Close() {
	v.epoch.stop()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.canvas.Close()
	v.chart = nil
}
