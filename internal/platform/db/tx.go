package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/incubyte/booking/internal/platform/apperr"
)

type contextKey string

const (
	pgTxKey  contextKey = "pg_tx"
	sqlTxKey contextKey = "sql_tx"
)

// ErrConcurrentWrite is returned when a serializable transaction lost a race
// against another writer.
var ErrConcurrentWrite = apperr.Invalid("concurrent booking conflict, please retry")

// TxRunner runs fn atomically. Repositories called with the context handed to
// fn take part in the same transaction. Nested calls reuse the outer one.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// =========== postgres ===========

// PGQuerier is the query surface shared by *pgxpool.Pool and pgx.Tx.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// PGConn returns the transaction carried by ctx, falling back to pool.
func PGConn(ctx context.Context, pool *pgxpool.Pool) PGQuerier {
	if tx, ok := ctx.Value(pgTxKey).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// PGTxRunner runs transactions at SERIALIZABLE isolation so that
// check-then-insert sequences cannot interleave.
type PGTxRunner struct {
	pool *pgxpool.Pool
}

func NewPGTxRunner(pool *pgxpool.Pool) *PGTxRunner {
	return &PGTxRunner{pool: pool}
}

func (r *PGTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(pgTxKey).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, pgTxKey, tx)); err != nil {
		return translateTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxError(fmt.Errorf("commit: %w", err))
	}
	return nil
}

func translateTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return ErrConcurrentWrite
	}
	return err
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either SQL backend.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// =========== database/sql (sqlite) ===========

// SQLQuerier is the query surface shared by *sql.DB and *sql.Tx.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SQLConn returns the transaction carried by ctx, falling back to sqlDB.
func SQLConn(ctx context.Context, sqlDB *sql.DB) SQLQuerier {
	if tx, ok := ctx.Value(sqlTxKey).(*sql.Tx); ok {
		return tx
	}
	return sqlDB
}

// SQLTxRunner runs transactions on a database/sql handle.
type SQLTxRunner struct {
	db *sql.DB
}

func NewSQLTxRunner(sqlDB *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: sqlDB}
}

func (r *SQLTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(sqlTxKey).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, sqlTxKey, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
