package export

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/client/repositories/exports"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

// Exporter serialises records, hands them to a sink and records the result
// in the export history.
type Exporter struct {
	sink    Sink
	history exports.Repository
	opts    Options
	log     logging.Logger
	now     func() time.Time
}

// NewExporter builds an Exporter. history may be nil.
func NewExporter(sink Sink, history exports.Repository, opts Options, log logging.Logger) *Exporter {
	return &Exporter{sink: sink, history: history, opts: opts, log: log.With("component", "export"), now: time.Now}
}

// Export writes records under name (DefaultFileName when empty).
func (e *Exporter) Export(ctx context.Context, name string, records []models.Record) (models.Export, error) {
	payload, err := Serialize(records, e.opts)
	if err != nil {
		return models.Export{}, err
	}
	if name == "" {
		name = DefaultFileName
	}

	location, err := e.sink.Put(ctx, name, payload)
	if err != nil {
		return models.Export{}, err
	}

	rec := models.Export{ID: uuid.NewString(), Location: location, Records: len(records), CreatedAt: e.now()}
	e.log.Info(ctx, "logs exported", "location", location, "records", len(records))

	if e.history != nil {
		if err := e.history.Add(ctx, rec); err != nil {
			e.log.Warn(ctx, "failed to record export history", "error", err)
		}
	}
	return rec, nil
}

// History returns the most recent exports, newest first.
func (e *Exporter) History(ctx context.Context, limit int) ([]models.Export, error) {
	if e.history == nil {
		return []models.Export{}, nil
	}
	return e.history.Recent(ctx, limit)
}
