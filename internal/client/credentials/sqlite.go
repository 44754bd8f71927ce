package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/phishwatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/dbx"
)

// SQLiteStore keeps the credential in the metadata table so it survives
// restarts until cleared.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	token, err := s.repo(s.db).Get(ctx, common.CredentialKey)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return token, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo(s.db).Set(ctx, common.CredentialKey, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// SetWithUser stores the credential and the login name atomically.
func (s *SQLiteStore) SetWithUser(ctx context.Context, token, username string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.CredentialKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, common.UsernameKey, username)
	})
}

// Username returns the login name saved with the credential, or "".
func (s *SQLiteStore) Username(ctx context.Context) (string, error) {
	name, err := s.repo(s.db).Get(ctx, common.UsernameKey)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	return name, err
}

// Clear removes the credential together with the saved login name.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, common.CredentialKey, common.UsernameKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
