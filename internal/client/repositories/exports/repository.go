// Package exports keeps a local history of completed CSV exports so the
// user can see where earlier files were written or uploaded.
package exports

import (
	"context"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
)

type Repository interface {
	// Add records a completed export.
	Add(ctx context.Context, e models.Export) error

	// Recent returns up to limit exports, newest first.
	Recent(ctx context.Context, limit int) ([]models.Export, error)
}
