package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/logs"
	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/client/views"
	"github.com/dmitrijs2005/phishwatch/internal/common"
)

const exportHistoryLimit = 20

func (a *App) dashboard(ctx context.Context, _ []string) error {
	a.printf("Loading dashboard...\n")
	if err := a.dash.Load(ctx); err != nil {
		return err
	}
	snap := a.dash.Snapshot()

	a.printf("Total feedback:   %d\n", snap.Summary.TotalFeedback)
	a.printf("Phishing reports: %d\n", snap.Summary.Phishing)
	if acc, ok := snap.Accuracy(); ok {
		a.printf("Accuracy:         %.1f%%\n", acc)
	} else {
		a.printf("Accuracy:         n/a (no feedback yet)\n")
	}
	a.printf("Scanned:          %d (%d phishing, %d safe)\n", snap.Counts.Total, snap.Counts.Phishing, snap.Counts.Safe)

	if snap.Spike {
		a.printf("!! Unusual spike in phishing activity detected today (%.1f%% phishing)\n", snap.SpikeRate*100)
	}

	a.printf("\nPhishing trend:\n")
	if h := a.dash.Chart(); h != nil {
		if err := h.Draw(a.out); err != nil {
			return err
		}
	} else {
		a.printf("No trend data yet.\n")
	}

	tips, err := a.api.Tips(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load tips", "error", err)
		return nil
	}
	if len(tips) > 0 {
		tip := tips[snap.LoadedAt.YearDay()%len(tips)]
		a.printf("\nTip: %s\n", tip.Content)
	}
	return nil
}

func (a *App) tips(ctx context.Context, _ []string) error {
	tips, err := a.api.Tips(ctx)
	if err != nil {
		return err
	}
	if len(tips) == 0 {
		a.printf("No tips yet.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTIP\n")
	for _, t := range tips {
		fmt.Fprintf(tw, "%d\t%s\n", t.ID, t.Content)
	}
	return tw.Flush()
}

func (a *App) listLogs(ctx context.Context, _ []string) error {
	if err := a.logs.Load(ctx); err != nil {
		return err
	}
	return a.printFiltered()
}

// ensureLogs loads the history once so filter and trend have data.
func (a *App) ensureLogs(ctx context.Context) error {
	if st, _ := a.logs.State(); st == views.Ready {
		return nil
	}
	return a.logs.Load(ctx)
}

func (a *App) printFiltered() error {
	p := a.logs.Predicate()
	if !p.IsDefault() {
		a.printf("Filters: %s\n", a.describePredicate(p))
	}

	records := a.logs.Filtered()
	if len(records) == 0 {
		a.printf("No logs match the current filters.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tURL\tVERDICT\tCONFIDENCE\tTIME\n")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f%%\t%s\n",
			r.ID, r.URL, r.Label(), r.Confidence*100, r.Timestamp.In(a.loc).Format(a.cfg.DateTimeLayout))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c := a.logs.Summary()
	a.printf("%d shown: %d phishing, %d safe\n", c.Total, c.Phishing, c.Safe)
	return nil
}

func (a *App) describePredicate(p logs.Predicate) string {
	lo, hi := p.Confidence()
	s := fmt.Sprintf("status=%s min=%.2f max=%.2f", p.Status(), lo, hi)
	if d := p.Dates(); d != nil {
		s += fmt.Sprintf(" from=%s to=%s", d.Start.In(a.loc).Format(a.cfg.DateLayout), d.End.In(a.loc).Format(a.cfg.DateLayout))
	}
	return s
}

func (a *App) filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Filters: %s\n", a.describePredicate(a.logs.Predicate()))
		return nil
	}

	p, err := a.predicateFrom(a.logs.Predicate(), args)
	if err != nil {
		return err
	}
	if err := a.ensureLogs(ctx); err != nil {
		return err
	}
	a.logs.SetPredicate(p)
	return a.printFiltered()
}

// predicateFrom applies name=value arguments to base. from and to must be
// given together; both empty removes the date filter.
func (a *App) predicateFrom(base logs.Predicate, args []string) (logs.Predicate, error) {
	kv, err := parseAssignments(args)
	if err != nil {
		return logs.Predicate{}, err
	}

	status := base.Status()
	lo, hi := base.Confidence()
	dates := base.Dates()

	for k, v := range kv {
		switch k {
		case "status":
			if status, err = logs.ParseStatus(v); err != nil {
				return logs.Predicate{}, err
			}
		case "min":
			if lo, err = parseConfidence(k, v); err != nil {
				return logs.Predicate{}, err
			}
		case "max":
			if hi, err = parseConfidence(k, v); err != nil {
				return logs.Predicate{}, err
			}
		case "from", "to":
		default:
			return logs.Predicate{}, fmt.Errorf("%w: unknown filter %q", common.ErrValidation, k)
		}
	}

	from, hasFrom := kv["from"]
	to, hasTo := kv["to"]
	switch {
	case !hasFrom && !hasTo:
	case hasFrom != hasTo:
		return logs.Predicate{}, fmt.Errorf("%w: from and to must be given together", common.ErrValidation)
	case from == "" && to == "":
		dates = nil
	default:
		start, err := a.parseDate("from", from)
		if err != nil {
			return logs.Predicate{}, err
		}
		end, err := a.parseDate("to", to)
		if err != nil {
			return logs.Predicate{}, err
		}
		r := logs.DayRange(start, end, a.loc)
		dates = &r
	}

	return logs.NewPredicate(status, lo, hi, dates)
}

func parseConfidence(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", common.ErrValidation, name, v)
	}
	return f, nil
}

func (a *App) parseDate(name, v string) (time.Time, error) {
	t, err := time.ParseInLocation(a.cfg.DateLayout, v, a.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must look like %s, got %q", common.ErrValidation, name, a.cfg.DateLayout, v)
	}
	return t, nil
}

func (a *App) clearFilters(_ context.Context, _ []string) error {
	a.logs.ClearFilters()
	a.printf("Filters cleared.\n")
	return nil
}

func (a *App) trend(ctx context.Context, _ []string) error {
	if err := a.ensureLogs(ctx); err != nil {
		return err
	}
	points := a.logs.Trend()
	if len(points) == 0 {
		a.printf("No data for the current filters.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "DAY\tTOTAL\tPHISHING\tRATIO\t\n")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t\n", p.DateKey, p.Total, p.Phishing, p.PhishingRatioPercent)
	}
	return tw.Flush()
}

func (a *App) export(ctx context.Context, args []string) error {
	if err := a.ensureLogs(ctx); err != nil {
		return err
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	rec, err := a.logs.Export(ctx, name)
	if err != nil {
		return err
	}
	a.printf("Exported %d records to %s\n", rec.Records, rec.Location)
	return nil
}

func (a *App) exportHistory(ctx context.Context, _ []string) error {
	list, err := a.exporter.History(ctx, exportHistoryLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No exports yet.\n")
		return nil
	}
	a.printExports(list)
	return nil
}

func (a *App) printExports(list []models.Export) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "WHEN\tRECORDS\tLOCATION\n")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.CreatedAt.In(a.loc).Format(a.cfg.DateTimeLayout), e.Records, e.Location)
	}
	_ = tw.Flush()
}
