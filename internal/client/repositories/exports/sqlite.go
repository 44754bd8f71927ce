package exports

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, e models.Export) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO export_history (id, location, records, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Location, e.Records, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert export %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.Export, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, location, records, created_at FROM export_history ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select exports: %w", err)
	}
	defer rows.Close()

	result := make([]models.Export, 0)
	for rows.Next() {
		var e models.Export
		var created time.Time
		if err := rows.Scan(&e.ID, &e.Location, &e.Records, &created); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		e.CreatedAt = created.UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}
	return result, nil
}
