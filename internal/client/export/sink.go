package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/phishwatch/internal/filex"
)

// Sink stores a finished export and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, payload []byte) (location string, err error)
}

// FileSink writes exports into Dir, created on first use. The returned
// location is the absolute file path.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(ctx context.Context, name string, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", errors.New("export file name is empty")
	}

	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
