// Package export turns detection records into CSV and delivers the file to
// a sink: the local filesystem or an S3-compatible bucket.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
)

// DefaultFileName is used when the caller gives no name.
const DefaultFileName = "email_logs.csv"

var header = []string{"URL", "Prediction", "Confidence", "Timestamp"}

// Options control how timestamps are rendered.
type Options struct {
	Location *time.Location
	Layout   string
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Layout == "" {
		o.Layout = "2006-01-02 15:04:05"
	}
	return o
}

// Serialize renders records as CSV with a header row. Fields containing
// commas, quotes or newlines are quoted. An empty input returns
// common.ErrNothingToExport.
func Serialize(records []models.Record, opts Options) ([]byte, error) {
	if len(records) == 0 {
		return nil, common.ErrNothingToExport
	}
	opts = opts.withDefaults()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.URL,
			r.Label(),
			fmt.Sprintf("%.2f%%", r.Confidence*100),
			r.Timestamp.In(opts.Location).Format(opts.Layout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
