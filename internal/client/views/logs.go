package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/export"
	"github.com/dmitrijs2005/phishwatch/internal/client/logs"
	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

// LogsSource fetches the detection history.
type LogsSource interface {
	Logs(ctx context.Context) ([]models.Record, error)
}

// Options controls how dates are bucketed and labelled.
type Options struct {
	Location   *time.Location
	DateLayout string
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.DateLayout == "" {
		o.DateLayout = "2006-01-02"
	}
	return o
}

// LogsView is the filterable detection history.
type LogsView struct {
	src      LogsSource
	exporter *export.Exporter
	opts     Options
	log      logging.Logger
	epoch    *epoch

	mu       sync.Mutex
	state    State
	err      error
	records  []models.Record
	pred     logs.Predicate
	filtered []models.Record
	trend    []logs.TrendPoint
}

// NewLogsView creates an idle view. exporter may be nil, in which case
// Export fails.
func NewLogsView(src LogsSource, sessions Sessions, exporter *export.Exporter, opts Options, log logging.Logger) *LogsView {
	v := &LogsView{
		src:      src,
		exporter: exporter,
		opts:     opts.withDefaults(),
		log:      log.With("view", "logs"),
		pred:     logs.DefaultPredicate(),
	}
	v.epoch = watchLogout(sessions, v.reset)
	v.recompute()
	return v
}

// Close stops listening for session changes.
func (v *LogsView) Close() {
	v.epoch.stop()
}

func (v *LogsView) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = nil
	v.state = Idle
	v.err = nil
	v.recompute()
}

// Load fetches the history. A response that arrives after a logout is
// dropped and common.ErrUnauthorized returned.
func (v *LogsView) Load(ctx context.Context) error {
	started := v.epoch.current()

	v.mu.Lock()
	v.state = Loading
	v.err = nil
	v.mu.Unlock()

	records, err := v.src.Logs(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.epoch.current() != started {
		v.log.Debug(ctx, "dropping logs response received after logout")
		v.state = Idle
		return common.ErrUnauthorized
	}
	if err != nil {
		v.state = Failed
		v.err = err
		return err
	}

	v.records = records
	v.state = Ready
	v.recompute()
	return nil
}

// recompute must be called with mu held.
func (v *LogsView) recompute() {
	v.filtered = logs.Apply(v.records, v.pred)
	v.trend = logs.Aggregate(v.filtered, v.opts.Location, v.opts.DateLayout)
}

func (v *LogsView) State() (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.err
}

func (v *LogsView) Predicate() logs.Predicate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pred
}

func (v *LogsView) SetPredicate(p logs.Predicate) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pred = p
	v.recompute()
}

// ClearFilters restores the predicate that matches every record.
func (v *LogsView) ClearFilters() {
	v.SetPredicate(logs.DefaultPredicate())
}

func (v *LogsView) Records() []models.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Record(nil), v.records...)
}

// Filtered returns the records passing the current predicate, in backend
// order.
func (v *LogsView) Filtered() []models.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Record(nil), v.filtered...)
}

// Summary counts the filtered records.
func (v *LogsView) Summary() logs.Counts {
	v.mu.Lock()
	defer v.mu.Unlock()
	return logs.Summarize(v.filtered)
}

// Trend is the daily series over the filtered records.
func (v *LogsView) Trend() []logs.TrendPoint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]logs.TrendPoint(nil), v.trend...)
}

// Export writes the filtered records. An empty filtered set is rejected
// with common.ErrNothingToExport.
func (v *LogsView) Export(ctx context.Context, name string) (models.Export, error) {
	if v.exporter == nil {
		return models.Export{}, fmt.Errorf("export is not configured")
	}
	records := v.Filtered()
	if len(records) == 0 {
		return models.Export{}, common.ErrNothingToExport
	}
	return v.exporter.Export(ctx, name, records)
}
