package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner is a DBTX that can open transactions, such as *pgxpool.Pool.
type Beginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Store builds repositories over a pool or a transaction.
// Inside a transaction single-row finders lock the rows they return.
type Store struct {
	db   DBTX
	lock bool
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Groups() repository.GroupRepository {
	return &GroupRepository{db: s.db, lock: s.lock}
}

func (s *Store) Labels() repository.LabelRepository {
	return &LabelRepository{db: s.db, lock: s.lock}
}

func (s *Store) Templates() repository.TemplateRepository {
	return &TemplateRepository{db: s.db}
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepository{db: s.db, lock: s.lock}
}

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	db Beginner
}

func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Store{db: tx, lock: true}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// notFound maps pgx.ErrNoRows to repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

const uniqueViolation = "23505"

// conflict maps a unique violation to repository.ErrConflict.
func conflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, repository.ErrConflict)
	}
	return err
}

func forUpdate(lock bool, clause string) string {
	if !lock {
		return ""
	}
	return " " + clause
}

var (
	_ repository.Store    = (*Store)(nil)
	_ repository.TxRunner = (*TxRunner)(nil)
)
